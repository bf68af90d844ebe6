package session

import (
	"net/http"
	"time"
)

// Config defines all runtime configuration for the session subsystem.
//
// Production is an explicit, injected value: cookie attributes must never
// depend on ambient process state read inside the core, and issuance and
// clearing must agree on attributes or some clients ignore the clear.
type Config struct {
	// Production hardens cookie attributes: Secure on, SameSite strict.
	// Development keeps Secure off and SameSite lax so plain-HTTP local
	// clients still round-trip the cookie.
	Production bool

	// CookieMaxAge is the issued cookie's lifetime.
	CookieMaxAge time.Duration

	// CookiePath applies to issuance and clearing alike.
	CookiePath string

	// StoreTimeout bounds each identity-store call made by the Resolver.
	StoreTimeout time.Duration

	// MaxCandidates caps the value-phase scan. Ids beyond the cap are
	// treated as no-match. Zero means unbounded.
	MaxCandidates int
}

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return Config{
		Production:    false,
		CookieMaxAge:  24 * time.Hour,
		CookiePath:    "/",
		StoreTimeout:  3 * time.Second,
		MaxCandidates: 10000,
	}
}

// Validate reports ErrConfig for unusable values.
func (c Config) Validate() error {
	if c.CookieMaxAge <= 0 {
		return ErrConfig
	}
	if c.StoreTimeout < 0 || c.MaxCandidates < 0 {
		return ErrConfig
	}
	return nil
}

func (c Config) sameSite() http.SameSite {
	if c.Production {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

func (c Config) path() string {
	if c.CookiePath == "" {
		return "/"
	}
	return c.CookiePath
}
