package types

import (
	"path/filepath"
	"strings"
)

// Item is a named tracking unit from the configuration. Files holds path
// specifications relative to both the home directory and the repository;
// a specification containing a wildcard is expanded as a glob. Ignore
// patterns only apply to glob expansion.
type Item struct {
	Name   string
	Files  []string
	Ignore []string
}

// NewItem creates an item with a single path specification
func NewItem(name, file string) Item {
	return Item{Name: name, Files: []string{file}}
}

// Specs returns the trimmed path specifications in declaration order
func (i Item) Specs() []string {
	specs := make([]string, 0, len(i.Files))
	for _, f := range i.Files {
		specs = append(specs, strings.TrimSpace(f))
	}
	return specs
}

// IsGlob reports whether a path specification contains a wildcard. Only
// "*" counts, so a literal name such as "f[1].txt" resolves as a file.
func IsGlob(spec string) bool {
	return strings.Contains(spec, "*")
}

// ValidateSpec returns a reason when the path specification cannot be
// resolved against a root, or "" when it is usable.
func ValidateSpec(spec string) string {
	switch spec {
	case "", "*", "**", "**/*":
		return "path is invalid"
	}

	if strings.HasPrefix(spec, "**") || strings.HasPrefix(spec, "/") || filepath.IsAbs(spec) {
		return "path is not relative: " + spec
	}

	clean := filepath.ToSlash(filepath.Clean(spec))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "path is outside of root: " + spec
	}

	return ""
}
