package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization. Applied before
// every lookup and insert so the unique index is effectively case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
