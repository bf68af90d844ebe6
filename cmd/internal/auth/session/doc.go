// Package session implements Velo's opaque hashed-cookie session protocol.
//
// There is no session table and no signed token. A session is a single
// HTTP cookie whose name is a salted digest of the literal string "id" and
// whose value is a salted digest of the user's numeric id. Because every
// digest carries a fresh random salt, neither side of the cookie can be
// looked up by equality or index: the Resolver must verify the constant
// against every cookie name presented, and on a name match verify the
// cookie value against every user id in the store, paying one slow hash
// comparison per candidate. That brute-force shape is the protocol; do not
// replace it with a reversible encoding or a cached lookup.
//
// Known property: logout only instructs the client to clear its cookies.
// A cookie value captured before logout keeps resolving until its Max-Age
// passes, because no server-side revocation state exists.
//
// Transport integration lives here too (RequireSession middleware); the
// HTTP handlers in auth/api are the only other consumer.
package session
