package digest

// Config is the single configuration surface for this package.
// It is injected by the caller; this package never reads the environment.
type Config struct {
	// Cost is the bcrypt cost parameter (work factor 2^Cost).
	Cost int
}

// DefaultConfig returns the baseline cost used for passwords and session
// cookie digests alike. 10 keeps a single verification in the tens of
// milliseconds on current hardware, which is the primitive's whole point.
func DefaultConfig() Config {
	return Config{Cost: 10}
}
