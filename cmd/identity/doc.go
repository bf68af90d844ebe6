// Package identity implements Velo's user persistence boundary.
//
// It holds the canonical User model, the store interfaces consumed by the
// HTTP and session layers, and the PostgreSQL implementation. The session
// resolver depends only on the narrow read-side Accessor; writes happen at
// registration and nowhere else (there are no update or delete paths).
package identity
