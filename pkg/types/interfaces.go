package types

import (
	"io/fs"
)

// FS is the filesystem interface required for resolution and sync
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// DirFS returns a read-only view rooted at dir, used for glob expansion
	DirFS(dir string) fs.FS
}

// Resolver turns configured items into groups of classified entries
type Resolver interface {
	Index(items []Item) ([]Group, error)
}
