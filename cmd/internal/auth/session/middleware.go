package session

import (
	"context"
	"errors"
	"net/http"

	"velo/cmd/identity"
)

type ctxKey int

const userIDKey ctxKey = iota

// WithUserID returns a context carrying the resolved user id.
func WithUserID(ctx context.Context, id identity.UserID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext extracts the resolved user id set by RequireSession.
func UserIDFromContext(ctx context.Context) (identity.UserID, bool) {
	id, ok := ctx.Value(userIDKey).(identity.UserID)
	return id, ok
}

// RequireSession runs the Resolver before next and attaches the resolved
// user id to the request context. Resolution failures answer 401 with a
// body that does not reveal whether any cookie was recognized; store and
// hash failures answer 500.
//
// onError writes the response for a given status; it keeps this package
// free of the API layer's JSON envelope.
func RequireSession(r *Resolver, onError func(w http.ResponseWriter, status int)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id, err := r.Resolve(req.Context(), req.Cookies())
			if err != nil {
				switch {
				case errors.Is(err, ErrNoCookies), errors.Is(err, ErrUnauthenticated):
					onError(w, http.StatusUnauthorized)
				case errors.Is(err, context.Canceled):
					// Client went away mid-resolution; abandoning is safe,
					// nothing partial was persisted.
					onError(w, http.StatusServiceUnavailable)
				default:
					// Store or hash failure. Absence of proof is denial,
					// but this is the server's fault, not the caller's.
					onError(w, http.StatusInternalServerError)
				}
				return
			}

			ctx := WithUserID(req.Context(), id)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
