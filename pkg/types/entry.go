package types

import (
	"fmt"
	"path"
)

// Entry is the unit of reconciliation. It is either a *FileEntry (a
// concrete file pair with a computed status) or an *InvalidEntry (a path
// specification that could not be resolved). Use a type switch to handle
// both.
type Entry interface {
	// Status returns the classification of the entry
	Status() Status

	// String returns a one-line description
	String() string

	isEntry()
}

// FileEntry is a concrete relative path with both absolute locations
type FileEntry struct {
	// RelPath is relative to both roots, e.g. ".config/nvim/init.lua"
	RelPath  string
	state    Status
	HomePath string
	RepoPath string
}

// NewFileEntry creates a resolved entry
func NewFileEntry(relPath string, status Status, homePath, repoPath string) *FileEntry {
	return &FileEntry{
		RelPath:  relPath,
		state:    status,
		HomePath: homePath,
		RepoPath: repoPath,
	}
}

// Status returns the entry's status
func (e *FileEntry) Status() Status { return e.state }

// IsBackup reports whether the relative path ends in a "backup" segment.
// Such entries are bookkeeping of the backup mechanism, not tracked files.
func (e *FileEntry) IsBackup() bool {
	return path.Base(e.RelPath) == "backup"
}

func (e *FileEntry) String() string {
	return fmt.Sprintf("%s %s", e.state, e.RelPath)
}

func (e *FileEntry) isEntry() {}

// InvalidEntry records a path specification that could not be resolved
type InvalidEntry struct {
	// Spec is the path specification as configured
	Spec   string
	Reason string
}

// NewInvalidEntry creates an invalid entry for a specification
func NewInvalidEntry(spec, reason string) *InvalidEntry {
	return &InvalidEntry{Spec: spec, Reason: reason}
}

// Status always returns StatusInvalid
func (e *InvalidEntry) Status() Status { return StatusInvalid }

func (e *InvalidEntry) String() string {
	return fmt.Sprintf("%s %s: %s", StatusInvalid, e.Spec, e.Reason)
}

func (e *InvalidEntry) isEntry() {}

// Group is the resolved output of one item
type Group struct {
	Name    string
	Entries []Entry
}

// Flatten concatenates the entries of all groups in order
func Flatten(groups []Group) []Entry {
	var entries []Entry
	for _, g := range groups {
		entries = append(entries, g.Entries...)
	}
	return entries
}
