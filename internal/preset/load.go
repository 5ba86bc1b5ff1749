package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and fully validates the preset file at path: YAML decode,
// per-record field validation, and the id-uniqueness check. It applies the
// same rules the store applies when it reconciles, so a file accepted here
// will be accepted there.
//
// Load is for standalone consumers (file verification tooling, the watcher,
// tests). The store itself reads through its [FileSystem] instead.
func Load(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read preset file %q: %w", path, err)
	}
	presets, err := decodePresets(data)
	if err != nil {
		return nil, fmt.Errorf("preset: parse preset file %q: %w", path, err)
	}
	return presets, nil
}

// LoadFromReader decodes and validates presets from r. The reader is
// consumed entirely. Useful in tests where files are string literals.
func LoadFromReader(r io.Reader) ([]Preset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("preset: read presets: %w", err)
	}
	presets, err := decodePresets(data)
	if err != nil {
		return nil, fmt.Errorf("preset: parse presets: %w", err)
	}
	return presets, nil
}

// InitFile creates a fresh, valid, empty preset file at path. It refuses to
// touch an existing file: initialisation must never clobber a live store.
func InitFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("preset: create preset file %q: %w", path, err)
	}
	_, werr := f.WriteString("[]\n")
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("preset: write preset file %q: %w", path, werr)
	}
	return nil
}

// decodePresets parses a whole preset document and enforces every per-record
// and cross-record rule. The returned slice is non-nil on success.
//
// An empty or null document is an error: a healthy store file always holds a
// YAML sequence, even if that sequence is empty ([]). A file that decodes to
// nothing is indistinguishable from a truncated or clobbered write.
func decodePresets(data []byte) ([]Preset, error) {
	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if presets == nil {
		return nil, errors.New("document is empty or null; an empty store must be an explicit empty sequence")
	}

	var errs []error
	seen := make(map[int]int, len(presets))
	for i, p := range presets {
		prefix := fmt.Sprintf("presets[%d]", i)
		if p.ID < 0 {
			errs = append(errs, fmt.Errorf("%s.id %d must not be negative", prefix, p.ID))
		}
		if prev, ok := seen[p.ID]; ok {
			errs = append(errs, fmt.Errorf("%s.id %d is a duplicate of presets[%d]", prefix, p.ID, prev))
		} else {
			seen[p.ID] = i
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s (id %d): %w", prefix, p.ID, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return presets, nil
}

// encodePresets serializes the whole collection in file order. A nil slice
// is written as an explicit empty sequence, never as a null document, so the
// file stays readable by [decodePresets].
func encodePresets(presets []Preset) ([]byte, error) {
	if presets == nil {
		presets = []Preset{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(presets); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("flush yaml encoder: %w", err)
	}
	return buf.Bytes(), nil
}
