// pkg/testutil/environment.go
// DEPENDENCIES: pkg/filesystem
// PURPOSE: Orchestrate a home directory and a repository for tests

package testutil

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a home directory and a repository on one filesystem
type TestEnvironment struct {
	HomeDir   string
	RepoDir   string
	ConfigDir string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.HomeDir = "/virtual/home"
		env.RepoDir = "/virtual/dotfiles"
		env.ConfigDir = "/virtual/home/.config"
		env.FS = NewTestFS()
	case EnvIsolated:
		tempDir := t.TempDir()
		env.HomeDir = filepath.Join(tempDir, "home")
		env.RepoDir = filepath.Join(tempDir, "dotfiles")
		env.ConfigDir = filepath.Join(tempDir, "home", ".config")
		env.FS = filesystem.NewOS()
	default:
		t.Fatalf("Unknown environment type: %d", envType)
	}

	for _, dir := range []string{env.HomeDir, env.RepoDir, env.ConfigDir} {
		CreateDirT(t, env.FS, dir)
	}

	return env
}

// NewTestFS returns an empty in-memory filesystem
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// FileTree represents a directory structure for testing. Values are either
// file content (string) or a nested FileTree.
type FileTree map[string]interface{}

// WithHomeTree creates files under the home directory
func (env *TestEnvironment) WithHomeTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.HomeDir, tree)
	return env
}

// WithRepoTree creates files under the repository
func (env *TestEnvironment) WithRepoTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.RepoDir, tree)
	return env
}

// HomePath returns the absolute home path of a slash-separated relative path
func (env *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(env.HomeDir, filepath.FromSlash(rel))
}

// RepoPath returns the absolute repository path of a slash-separated relative path
func (env *TestEnvironment) RepoPath(rel string) string {
	return filepath.Join(env.RepoDir, filepath.FromSlash(rel))
}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fullPath := filepath.Join(basePath, filepath.FromSlash(name))

		switch v := tree[name].(type) {
		case string:
			CreateFileT(t, fs, fullPath, v)
		case FileTree:
			CreateDirT(t, fs, fullPath)
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, v)
		}
	}
}
