package session

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"velo/cmd/identity"
	"velo/cmd/security/digest"
)

// cookieNamePlaintext is the constant whose salted digest becomes the
// cookie name. The Resolver verifies every incoming cookie name against it.
const cookieNamePlaintext = "id"

// Issuer mints session cookies for authenticated users.
type Issuer struct {
	cfg    Config
	hasher digest.Config
}

// NewIssuer constructs an Issuer.
func NewIssuer(cfg Config, hasher digest.Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg, hasher: hasher}, nil
}

// Issue produces the session cookie for userID: the name is a fresh salted
// digest of "id", the value a fresh salted digest of the id's decimal form.
// Every call yields different name and value strings; each issued pair
// resolves independently until it expires or the client drops it.
//
// Hash failures are fatal for the request; there is nothing to retry.
func (i *Issuer) Issue(ctx context.Context, userID identity.UserID) (*http.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, fmt.Errorf("session: issue: invalid user id %d", userID)
	}

	name, err := i.hasher.Hash(cookieNamePlaintext)
	if err != nil {
		return nil, fmt.Errorf("session: hash cookie name: %w", err)
	}
	value, err := i.hasher.Hash(strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, fmt.Errorf("session: hash cookie value: %w", err)
	}

	metricIssuedTotal.Inc()

	return &http.Cookie{
		Name:     encodeCookieToken(name),
		Value:    encodeCookieToken(value),
		Path:     i.cfg.path(),
		MaxAge:   int(i.cfg.CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   i.cfg.Production,
		SameSite: i.cfg.sameSite(),
	}, nil
}

// SetCookie issues a session cookie for userID and attaches it to the
// response. Exactly one cookie is set; pre-existing cookies are untouched.
func (i *Issuer) SetCookie(ctx context.Context, w http.ResponseWriter, userID identity.UserID) error {
	ck, err := i.Issue(ctx, userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, ck)
	return nil
}
