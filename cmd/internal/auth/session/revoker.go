package session

import (
	"net/http"
	"strings"
)

// Revoker clears client-held cookies on logout.
type Revoker struct {
	cfg Config
}

// NewRevoker constructs a Revoker.
func NewRevoker(cfg Config) (*Revoker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Revoker{cfg: cfg}, nil
}

// RevokeAll instructs the client to expire every cookie it sent, including
// cookies this system never issued. No verification happens first; logout
// is coarse and unconditional. Returns ErrNoCookies (and sets nothing) when
// the request carried no cookies.
//
// Clearing uses the same HttpOnly/Secure/SameSite/Path attributes as
// issuance; a mismatch makes some clients ignore the clear.
func (rv *Revoker) RevokeAll(w http.ResponseWriter, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return ErrNoCookies
	}

	for _, ck := range cookies {
		if strings.TrimSpace(ck.Name) == "" {
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:     ck.Name,
			Value:    "",
			Path:     rv.cfg.path(),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   rv.cfg.Production,
			SameSite: rv.cfg.sameSite(),
		})
		metricRevokedCookies.Inc()
	}
	return nil
}
