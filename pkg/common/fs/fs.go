package fs

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// RuntimeDir is the directory, relative to the base path, holding local state
// such as the sqlite database file.
const RuntimeDir = ".runtime"

// FileSystem wraps an Afero filesystem rooted at a runtime directory
type FileSystem struct {
	fs          afero.Fs
	runtimePath string
}

// New creates a filesystem rooted at ./.runtime
func New() (*FileSystem, error) {
	return NewWithBasePath(".")
}

// NewWithBasePath creates a filesystem instance with custom base path
func NewWithBasePath(basePath string) (*FileSystem, error) {
	return NewWithFs(afero.NewOsFs(), basePath)
}

// NewWithFs creates the runtime directory on the given filesystem.
func NewWithFs(fs afero.Fs, basePath string) (*FileSystem, error) {
	runtimePath := filepath.Join(basePath, RuntimeDir)
	if err := fs.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}
	return &FileSystem{fs: fs, runtimePath: runtimePath}, nil
}

// GetRuntimePath returns the .runtime directory path
func (fsys *FileSystem) GetRuntimePath() string {
	return fsys.runtimePath
}

// Path joins name onto the runtime directory.
func (fsys *FileSystem) Path(name string) string {
	return filepath.Join(fsys.runtimePath, name)
}

// Exists reports whether name exists inside the runtime directory.
func (fsys *FileSystem) Exists(name string) (bool, error) {
	return afero.Exists(fsys.fs, fsys.Path(name))
}

// Size returns the size in bytes of name inside the runtime directory.
func (fsys *FileSystem) Size(name string) (int64, error) {
	info, err := fsys.fs.Stat(fsys.Path(name))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
