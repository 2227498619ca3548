package hashutil

import (
	"bytes"
	"crypto/sha256"
)

// FileReader is the subset of types.FS needed to digest files
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// Digest returns the raw SHA256 digest of data
func Digest(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// SameContent reports whether two files have identical SHA256 digests
func SameContent(fsys FileReader, a, b string) (bool, error) {
	dataA, err := fsys.ReadFile(a)
	if err != nil {
		return false, err
	}
	dataB, err := fsys.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(Digest(dataA), Digest(dataB)), nil
}
