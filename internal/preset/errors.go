package preset

import "errors"

// ErrStoreUnavailable is returned when the preset file is missing or cannot
// be reached at the filesystem level (stat, read, or a write against a file
// that vanished). The store itself may be fine; the environment is not.
var ErrStoreUnavailable = errors.New("preset store unavailable")

// ErrStoreCorrupt is returned when the preset file exists but its content is
// unusable: malformed YAML, an empty or null document, a record failing
// field validation, or duplicate ids. The store never repairs the file.
var ErrStoreCorrupt = errors.New("preset store corrupt")

// ErrNotFound is returned by Update and Delete when no preset with the
// requested id exists.
var ErrNotFound = errors.New("preset not found")

// ErrInvalidPreset is returned by Add and Update when the caller-supplied
// record fails field validation. The joined per-field violations are
// attached to the chain.
var ErrInvalidPreset = errors.New("invalid preset")

// IsClientFault reports whether err is the caller's fault (unknown id,
// invalid record) rather than a store or environment fault. API layers use
// this to pick a 4xx-style response over a 5xx-style one.
func IsClientFault(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidPreset)
}
