// Package hash fingerprints file content for backup deduplication.
//
// A new snapshot is skipped when a file's digest matches its newest existing
// snapshot, so repeated rewrites of an unchanged profile do not pile up
// identical copies.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher computes a content fingerprint for a file.
type Hasher interface {
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher with crypto/sha256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile returns the hex SHA-256 digest of the file at path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FakeHasher implements Hasher with preset digests for tests.
type FakeHasher struct {
	hashes map[string]string
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{hashes: make(map[string]string)}
}

// SetHash pins the digest reported for path.
func (h *FakeHasher) SetHash(path, digest string) {
	h.hashes[path] = digest
}

// HashFile returns the pinned digest for path, or a shared placeholder for
// paths that were never pinned.
func (h *FakeHasher) HashFile(path string) (string, error) {
	if digest, ok := h.hashes[path]; ok {
		return digest, nil
	}
	return "fakehash", nil
}
