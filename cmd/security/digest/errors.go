package digest

import "errors"

// Public, stable errors for callers.
var (
	ErrEmptyPlaintext   = errors.New("empty plaintext")
	ErrPlaintextTooLong = errors.New("plaintext too long")
	ErrInvalidCost      = errors.New("invalid bcrypt cost")
)
