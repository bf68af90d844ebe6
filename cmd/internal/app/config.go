package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	authapi "velo/cmd/internal/auth/api"
	"velo/cmd/internal/auth/session"
	"velo/cmd/security/digest"
)

// Config is the full runtime configuration, loaded once at startup.
// Core packages never read the environment themselves; everything they
// need is derived from here and injected.
type Config struct {
	Production bool   `env:"VELO_PRODUCTION" envDefault:"false"`
	LogLevel   string `env:"VELO_LOG_LEVEL" envDefault:"info"`

	HTTPAddr          string        `env:"VELO_HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"VELO_HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"VELO_HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"VELO_HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"VELO_HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	MaxHeaderBytes    int           `env:"VELO_HTTP_MAX_HEADER_BYTES" envDefault:"1048576"`
	MaxBodyBytes      int64         `env:"VELO_HTTP_MAX_BODY_BYTES" envDefault:"1048576"`
	ShutdownTimeout   time.Duration `env:"VELO_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	TrustProxy        bool          `env:"VELO_TRUST_PROXY" envDefault:"false"`

	DatabaseURL string `env:"VELO_DATABASE_URL"`
	DBSchema    string `env:"VELO_DB_SCHEMA" envDefault:"velo"`
	DBMaxConns  int32  `env:"VELO_DB_MAX_CONNS" envDefault:"8"`
	DBMinConns  int32  `env:"VELO_DB_MIN_CONNS" envDefault:"0"`

	BcryptCost int `env:"VELO_BCRYPT_COST" envDefault:"10"`

	SessionMaxAge        time.Duration `env:"VELO_SESSION_MAX_AGE" envDefault:"24h"`
	SessionCookiePath    string        `env:"VELO_SESSION_COOKIE_PATH" envDefault:"/"`
	SessionStoreTimeout  time.Duration `env:"VELO_SESSION_STORE_TIMEOUT" envDefault:"3s"`
	SessionMaxCandidates int           `env:"VELO_SESSION_MAX_CANDIDATES" envDefault:"10000"`

	AuthRPS        float64       `env:"VELO_AUTH_RPS" envDefault:"5"`
	AuthBurst      int           `env:"VELO_AUTH_BURST" envDefault:"10"`
	LimiterIdleTTL time.Duration `env:"VELO_AUTH_LIMITER_IDLE_TTL" envDefault:"10m"`
}

// LoadConfig reads a .env file when present, then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("app: load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("app: parse config: %w", err)
	}

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Sanitize clamps loaded values into workable ranges.
func (c *Config) Sanitize() {
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.BcryptCost < bcrypt.MinCost {
		c.BcryptCost = digest.DefaultConfig().Cost
	}
	if c.BcryptCost > bcrypt.MaxCost {
		c.BcryptCost = bcrypt.MaxCost
	}
	if c.SessionMaxAge <= 0 {
		c.SessionMaxAge = 24 * time.Hour
	}
	if c.SessionCookiePath == "" {
		c.SessionCookiePath = "/"
	}
	if c.SessionStoreTimeout <= 0 {
		c.SessionStoreTimeout = 3 * time.Second
	}
	if c.SessionMaxCandidates < 0 {
		c.SessionMaxCandidates = 0
	}
	if c.DBSchema == "" {
		c.DBSchema = "velo"
	}
}

// Validate rejects configurations the app cannot start with.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("app: VELO_DATABASE_URL is required")
	}
	return nil
}

// SessionConfig derives the injected session-subsystem configuration.
func (c Config) SessionConfig() session.Config {
	return session.Config{
		Production:    c.Production,
		CookieMaxAge:  c.SessionMaxAge,
		CookiePath:    c.SessionCookiePath,
		StoreTimeout:  c.SessionStoreTimeout,
		MaxCandidates: c.SessionMaxCandidates,
	}
}

// APIConfig derives the HTTP-edge configuration for the auth handlers.
func (c Config) APIConfig() authapi.Config {
	return authapi.Config{
		MaxBodyBytes:   c.MaxBodyBytes,
		TrustProxy:     c.TrustProxy,
		AuthRPS:        c.AuthRPS,
		AuthBurst:      c.AuthBurst,
		LimiterIdleTTL: c.LimiterIdleTTL,
	}
}

// DigestConfig derives the salted-hash primitive configuration.
func (c Config) DigestConfig() digest.Config {
	return digest.Config{Cost: c.BcryptCost}
}
