package digest

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt operates on at most 72 bytes of input; longer plaintexts are
// silently truncated by some implementations, which would make distinct
// inputs verify against each other. Reject instead.
const maxPlaintextBytes = 72

// Hash hashes plaintext with a fresh random salt and returns the encoded
// digest (modular crypt format: $2a$<cost>$<salt+hash>).
//
// Calling Hash twice with the same plaintext yields two different digest
// strings; only Verify can relate them back to the plaintext.
func (c Config) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}
	if len(plaintext) > maxPlaintextBytes {
		return "", ErrPlaintextTooLong
	}

	cost := c.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return string(out), nil
}

// Verify reports whether digest was produced by hashing exactly plaintext.
// It recovers the salt embedded in the digest, recomputes, and compares in
// constant time. Malformed digests report false; Verify never panics.
func (c Config) Verify(plaintext, digest string) bool {
	if plaintext == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
