package testutil

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotf/pkg/types"
)

// CreateFileT creates a file and its parent directories on fs
func CreateFileT(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	CreateFileModeT(t, fs, path, content, 0644)
}

// CreateFileModeT creates a file with the given permissions
func CreateFileModeT(t *testing.T, fs types.FS, path, content string, mode os.FileMode) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := fs.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
}

// CreateDirT creates a directory on fs
func CreateDirT(t *testing.T, fs types.FS, path string) {
	t.Helper()

	if err := fs.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
}

// ReadFileT returns the content of a file on fs
func ReadFileT(t *testing.T, fs types.FS, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// FileExistsT reports whether path exists on fs
func FileExistsT(t *testing.T, fs types.FS, path string) bool {
	t.Helper()

	_, err := fs.Stat(path)
	if err == nil {
		return true
	}
	if !IsNotExist(err) {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return false
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, fs types.FS, path, expected string) {
	t.Helper()

	if !FileExistsT(t, fs, path) {
		t.Fatalf("File %s does not exist", path)
	}

	actual := ReadFileT(t, fs, path)
	if actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertNoFile checks that a file does not exist.
func AssertNoFile(t *testing.T, fs types.FS, path string) {
	t.Helper()

	if FileExistsT(t, fs, path) {
		t.Errorf("File %s exists but should not", path)
	}
}

// IsNotExist returns true if the error indicates a file does not exist
func IsNotExist(err error) bool {
	return err != nil && stderrors.Is(err, fs.ErrNotExist)
}

// SkipOnWindows skips the test if running on Windows.
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if os.PathSeparator == '\\' {
		t.Skip("Test not supported on Windows")
	}
}
