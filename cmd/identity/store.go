package identity

import (
	"context"
	"time"
)

// UserID is a serial positive integer assigned at registration. IDs are
// immutable and never reused; the session cookie value is a salted digest
// of this number's decimal form.
type UserID = int64

// User is Velo's canonical principal.
type User struct {
	ID      UserID
	Email   string
	Name    string
	Surname string
	Phone   *string

	CreatedAt time.Time
}

// UserAuth couples a user with its stored password digest.
// The digest never leaves the auth handlers.
type UserAuth struct {
	User         User
	PasswordHash string
}

// CreateUserInput describes a registration request. Email is normalized by
// the store; PasswordHash must already be a salted digest.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	Name         string
	Surname      string
	Phone        *string
	Now          time.Time
}

// Accessor is the read-side boundary the session resolver depends on.
//
// ListUserIDs returns a fresh snapshot of every user id in store order.
// Results must not be cached across requests: the salted comparison
// primitive makes any cached equivalence unsound.
type Accessor interface {
	ListUserIDs(ctx context.Context) ([]UserID, error)
	GetUserByID(ctx context.Context, id UserID) (User, error)
}

// Store is the full identity persistence boundary.
type Store interface {
	Accessor
	GetUserAuthByEmail(ctx context.Context, email string) (UserAuth, error)
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)
}
