// Package digest provides Velo's salted one-way hash primitive.
//
// It wraps bcrypt behind a small Config surface and is used for two things:
// stored password hashes and the opaque session cookie scheme (both the
// hashed cookie name and the hashed user id value). Both uses share the
// same cost so an attacker gains nothing from attacking the cheaper one.
//
// Properties callers rely on:
//   - Hash picks a fresh random salt on every call, so two digests of the
//     same plaintext are (almost) never equal as strings.
//   - Equivalence can only be established through Verify; digests must
//     never be compared with == or used as map keys.
//   - Verify treats the digest as untrusted input: malformed or truncated
//     digests report false, they never panic or error out.
package digest
