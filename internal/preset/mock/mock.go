// Package mock provides an in-memory mock implementation of
// [preset.FileSystem] for use in unit tests.
//
// The mock records every write and allows the test to inject faults via
// exported fields. Modification times are controlled explicitly, so
// watermark behaviour can be tested without sleeping on real filesystem
// timestamp granularity. It is safe for concurrent use.
//
// Example:
//
//	fsys := mock.NewFS()
//	fsys.Seed("presets.yaml", []byte("[]\n"), time.Unix(1000, 0))
//	fsys.WriteErr = errors.New("disk full")
//	s := preset.NewStore("presets.yaml", preset.WithFileSystem(fsys))
//	_, err := s.Add(ctx, p) // fails, cache rolled back
package mock

import (
	"io/fs"
	"sync"
	"time"

	"github.com/kanade-engine/presetstore/internal/preset"
)

// Compile-time interface assertion.
var _ preset.FileSystem = (*FS)(nil)

// WriteCall records the arguments of a single [FS.WriteFile] call.
type WriteCall struct {
	// Name is the file path passed to WriteFile.
	Name string
	// Data is the content passed to WriteFile.
	Data []byte
	// Perm is the file mode passed to WriteFile.
	Perm fs.FileMode
}

// FS is a mock implementation of [preset.FileSystem]. All exported *Err
// fields control returned errors. Call counters and records accumulate
// invocations.
type FS struct {
	mu    sync.Mutex
	files map[string]*file
	clock time.Time

	// StatErr, when non-nil, is returned by every [FS.Stat] call.
	StatErr error

	// ReadErr, when non-nil, is returned by every [FS.ReadFile] call.
	ReadErr error

	// WriteErr, when non-nil, is returned by every [FS.WriteFile] call.
	// The file content is left untouched.
	WriteErr error

	// CallCountStat records how many times Stat was called.
	CallCountStat int

	// CallCountRead records how many times ReadFile was called.
	CallCountRead int

	// WriteCalls records all WriteFile invocations, including failed ones.
	WriteCalls []WriteCall
}

type file struct {
	data  []byte
	mtime time.Time
}

// NewFS returns an empty mock filesystem. Its internal clock starts at a
// fixed instant and advances one second per successful write.
func NewFS() *FS {
	return &FS{
		files: make(map[string]*file),
		clock: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Seed creates or replaces a file with explicit content and modification
// time without recording a write call. Use it to set up "external" state.
func (m *FS) Seed(name string, data []byte, mtime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = &file{data: append([]byte(nil), data...), mtime: mtime}
	if mtime.After(m.clock) {
		m.clock = mtime
	}
}

// Touch updates only the modification time of an existing file, simulating
// an external toucher. Returns [fs.ErrNotExist] if the file is absent.
func (m *FS) Touch(name string, mtime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[name]
	if !ok {
		return &fs.PathError{Op: "touch", Path: name, Err: fs.ErrNotExist}
	}
	f.mtime = mtime
	if mtime.After(m.clock) {
		m.clock = mtime
	}
	return nil
}

// Remove deletes a file, simulating it vanishing out from under the store.
func (m *FS) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
}

// Content returns a copy of the current file content and whether the file
// exists, without recording a read call.
func (m *FS) Content(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), f.data...), true
}

// ModTime returns the current modification time of a file, or the zero time
// when the file is absent.
func (m *FS) ModTime(name string) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[name]
	if !ok {
		return time.Time{}
	}
	return f.mtime
}

// Stat implements [preset.FileSystem].
func (m *FS) Stat(name string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCountStat++
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	f, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{name: name, size: int64(len(f.data)), mtime: f.mtime}, nil
}

// ReadFile implements [preset.FileSystem].
func (m *FS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCountRead++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	f, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.data...), nil
}

// WriteFile implements [preset.FileSystem]. Each successful write advances
// the mock clock by one second and stamps the file with the new time.
func (m *FS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Name: name,
		Data: append([]byte(nil), data...),
		Perm: perm,
	})
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.clock = m.clock.Add(time.Second)
	m.files[name] = &file{data: append([]byte(nil), data...), mtime: m.clock}
	return nil
}

// fileInfo is the minimal [fs.FileInfo] returned by [FS.Stat].
type fileInfo struct {
	name  string
	size  int64
	mtime time.Time
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return 0o644 }
func (fi fileInfo) ModTime() time.Time { return fi.mtime }
func (fi fileInfo) IsDir() bool        { return false }
func (fi fileInfo) Sys() any           { return nil }
