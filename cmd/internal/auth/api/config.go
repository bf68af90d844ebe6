package authapi

import "time"

// Config carries the HTTP-edge knobs for the auth handlers.
type Config struct {
	// MaxBodyBytes bounds request bodies before JSON decoding.
	MaxBodyBytes int64

	// TrustProxy enables X-Forwarded-For / X-Real-IP parsing for
	// rate-limit keys. Leave false unless a trusted proxy fronts
	// the service.
	TrustProxy bool

	// Per-IP token bucket for /register and /login.
	AuthRPS   float64
	AuthBurst int

	// LimiterIdleTTL evicts per-IP buckets that have been idle this long.
	LimiterIdleTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:   1 << 20,
		AuthRPS:        5,
		AuthBurst:      10,
		LimiterIdleTTL: 10 * time.Minute,
	}
}
