package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"velo/cmd/identity"
	"velo/cmd/security/digest"
)

// Resolver maps an incoming request's cookies back to a user identity by
// brute-force verification against the identity store.
type Resolver struct {
	cfg    Config
	hasher digest.Config
	users  identity.Accessor
	log    *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(cfg Config, hasher digest.Config, users identity.Accessor, log *slog.Logger) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if users == nil {
		return nil, fmt.Errorf("session: nil identity accessor")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{cfg: cfg, hasher: hasher, users: users, log: log}, nil
}

// Resolve determines the caller's user id from the request's cookie set.
//
// Precondition: at most one cookie in the set was issued by this system.
// The name phase stops at the first cookie whose name verifies against the
// hashed constant, so a second issued cookie in the same jar is never
// examined.
//
// Cookie order is whatever the client sent; correctness must not depend on
// it, only which-of-several-issued-cookies wins does, and the precondition
// rules that case out.
//
// Errors: ErrNoCookies for an empty set, ErrUnauthenticated when nothing
// verifies, and the store's error verbatim when listing ids fails - a
// resolver that cannot prove absence of a session denies, it never grants.
func (r *Resolver) Resolve(ctx context.Context, cookies []*http.Cookie) (identity.UserID, error) {
	start := time.Now()
	defer func() { metricResolveDuration.Observe(time.Since(start).Seconds()) }()

	if len(cookies) == 0 {
		metricResolveTotal.WithLabelValues(outcomeNoCookies).Inc()
		return 0, ErrNoCookies
	}

	// Name phase: one bcrypt verification per cookie until a match.
	scanned := 0
	var matched *http.Cookie
	for _, ck := range cookies {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		name, ok := decodeCookieToken(ck.Name)
		if !ok {
			continue
		}
		scanned++
		if r.hasher.Verify(cookieNamePlaintext, name) {
			matched = ck
			break
		}
	}
	metricCookiesScanned.Observe(float64(scanned))

	if matched == nil {
		metricResolveTotal.WithLabelValues(outcomeUnauthenticated).Inc()
		return 0, ErrUnauthenticated
	}

	value, ok := decodeCookieToken(matched.Value)
	if !ok {
		metricResolveTotal.WithLabelValues(outcomeUnauthenticated).Inc()
		return 0, ErrUnauthenticated
	}

	ids, err := r.listUserIDs(ctx)
	if err != nil {
		metricResolveTotal.WithLabelValues(outcomeError).Inc()
		r.log.Error("session.resolve.list_ids.fail", "err", err)
		return 0, fmt.Errorf("session: list user ids: %w", err)
	}

	// Value phase: verify the cookie value against each candidate id in
	// store order, bounded by MaxCandidates.
	tested := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if r.cfg.MaxCandidates > 0 && tested >= r.cfg.MaxCandidates {
			r.log.Warn("session.resolve.candidate_cap", "cap", r.cfg.MaxCandidates, "total", len(ids))
			break
		}
		tested++
		if r.hasher.Verify(strconv.FormatInt(id, 10), value) {
			metricCandidatesScanned.Observe(float64(tested))
			metricResolveTotal.WithLabelValues(outcomeResolved).Inc()
			return id, nil
		}
	}
	metricCandidatesScanned.Observe(float64(tested))

	metricResolveTotal.WithLabelValues(outcomeUnauthenticated).Inc()
	return 0, ErrUnauthenticated
}

// listUserIDs fetches a fresh id snapshot, bounded by StoreTimeout.
// No caching across requests: salted digests cannot be pre-compared.
func (r *Resolver) listUserIDs(ctx context.Context) ([]identity.UserID, error) {
	if r.cfg.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.StoreTimeout)
		defer cancel()
	}
	return r.users.ListUserIDs(ctx)
}
