package session

import "errors"

var (
	// ErrNoCookies is returned when the request carried zero cookies.
	// Callers surface it as 401 on protected routes and 400 on logout,
	// but the response body must not be distinguishable from
	// ErrUnauthenticated on protected routes.
	ErrNoCookies = errors.New("no cookies presented")

	// ErrUnauthenticated is returned when cookies were present but none
	// verify against the issued name/value scheme, or the claimed user id
	// no longer exists in the store.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
