package hdkeys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// RootVersion is the current master-secret format version.
	RootVersion = 1

	// RootSize is the full size of a master secret in bytes.
	RootSize = 32

	// minRootSize is the shortest master secret accepted on load; shorter
	// roots written by older tools are zero-padded up to RootSize.
	minRootSize = 16
)

// IsKnownRootVersion reports whether the given master-secret format
// version can be handled by this package.
func IsKnownRootVersion(version int) bool {
	return version == RootVersion
}

// Root holds the wallet master secret. It is the unique owner of the raw
// bytes and must be erased with Zero before being discarded.
type Root struct {
	secret [RootSize]byte
}

// NewRandomRoot generates a cryptographically strong random master secret.
func NewRandomRoot() (*Root, error) {
	root := &Root{}
	if _, err := rand.Read(root.secret[:]); err != nil {
		return nil, fmt.Errorf("failed to generate master secret: %w", err)
	}
	return root, nil
}

// RootFromBytes loads a master secret from its stored form. Between 16 and
// 32 bytes are accepted; short values are zero-padded to 32 bytes.
func RootFromBytes(buf []byte) (*Root, error) {
	if len(buf) < minRootSize || len(buf) > RootSize {
		return nil, fmt.Errorf(
			"expected between %d and %d bytes for master secret, got %d",
			minRootSize, RootSize, len(buf),
		)
	}
	root := &Root{}
	copy(root.secret[:], buf)
	return root, nil
}

// Bytes returns the raw master secret. The slice aliases the root's own
// buffer and is invalidated by Zero.
func (r *Root) Bytes() []byte {
	return r.secret[:]
}

// Hex returns the lowercase hex encoding of the master secret, as written
// to wallet recovery files.
func (r *Root) Hex() string {
	return hex.EncodeToString(r.secret[:])
}

// Zero erases the master secret from memory.
func (r *Root) Zero() {
	Zero(r.secret[:])
}
