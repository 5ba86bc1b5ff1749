package preset

import (
	"io/fs"
	"os"
)

// FileSystem is the filesystem surface the store consumes: stat for the
// freshness watermark, whole-file read, whole-file write. The default is the
// real filesystem; tests substitute an in-memory implementation to control
// modification times and inject I/O faults.
type FileSystem interface {
	// Stat returns file metadata. The store only uses ModTime.
	Stat(name string) (fs.FileInfo, error)

	// ReadFile returns the entire file content.
	ReadFile(name string) ([]byte, error)

	// WriteFile replaces the entire file content.
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// Compile-time interface check.
var _ FileSystem = osFS{}

// osFS is the [FileSystem] backed by the real filesystem.
type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}
