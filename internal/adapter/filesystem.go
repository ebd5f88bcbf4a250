package adapter

import (
	"io/fs"
	"os"
)

// FileSystem defines an interface for file system operations to enable mocking
//
//go:generate mockgen -source=filesystem.go -destination=../mocks/filesystem.go -package=mocks -mock_names=FileSystem=MockFileSystem
type FileSystem interface {
	// ReadDir lists the named directory sorted by filename
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the whole named file
	ReadFile(name string) ([]byte, error)

	// MkdirAll creates a directory along with any necessary parents
	MkdirAll(path string, perm fs.FileMode) error

	// WriteFile writes data to the named file, creating or truncating it
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// RealFileSystem implements FileSystem using the standard os package
type RealFileSystem struct{}

// NewFileSystem creates a new real file system
func NewFileSystem() FileSystem {
	return &RealFileSystem{}
}

func (f *RealFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (f *RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec,G304 // Snapshot and result paths come from configuration
}

func (f *RealFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *RealFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}
