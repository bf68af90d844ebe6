package digest

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// Tests use MinCost; DefaultConfig's cost is deliberately slow.
func fastConfig() Config {
	return Config{Cost: bcrypt.MinCost}
}

func TestHashAndVerify_OK(t *testing.T) {
	cfg := fastConfig()

	h, err := cfg.Hash("id")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !cfg.Verify("id", h) {
		t.Fatalf("expected match")
	}
}

func TestHash_FreshSaltPerCall(t *testing.T) {
	cfg := fastConfig()

	a, err := cfg.Hash("42")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := cfg.Hash("42")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if a == b {
		t.Fatalf("two digests of the same plaintext must not be string-equal")
	}
	if !cfg.Verify("42", a) || !cfg.Verify("42", b) {
		t.Fatalf("both digests must verify against the plaintext")
	}
}

func TestVerify_WrongPlaintext(t *testing.T) {
	cfg := fastConfig()

	h, err := cfg.Hash("7")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if cfg.Verify("8", h) {
		t.Fatalf("expected mismatch")
	}
}

func TestVerify_MalformedDigest(t *testing.T) {
	cfg := fastConfig()

	for _, d := range []string{"", "not-a-digest", "$2a$10$short", strings.Repeat("x", 60)} {
		if cfg.Verify("id", d) {
			t.Fatalf("malformed digest %q must not verify", d)
		}
	}
}

func TestHash_RejectsEmptyAndOversized(t *testing.T) {
	cfg := fastConfig()

	if _, err := cfg.Hash(""); err != ErrEmptyPlaintext {
		t.Fatalf("expected ErrEmptyPlaintext, got %v", err)
	}
	if _, err := cfg.Hash(strings.Repeat("a", 73)); err != ErrPlaintextTooLong {
		t.Fatalf("expected ErrPlaintextTooLong, got %v", err)
	}
}

func TestHashRejectsOutOfRangeCost(t *testing.T) {
	cfg := Config{Cost: 99}
	if _, err := cfg.Hash("abc123"); !errors.Is(err, ErrInvalidCost) {
		t.Fatalf("expected ErrInvalidCost, got %v", err)
	}
}
