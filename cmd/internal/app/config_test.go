package app

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestSanitizeClampsValues(t *testing.T) {
	t.Parallel()

	cfg := Config{
		BcryptCost:           99,
		SessionMaxAge:        -time.Hour,
		SessionMaxCandidates: -5,
	}
	cfg.Sanitize()

	if cfg.BcryptCost != bcrypt.MaxCost {
		t.Fatalf("BcryptCost=%d want=%d", cfg.BcryptCost, bcrypt.MaxCost)
	}
	if cfg.SessionMaxAge != 24*time.Hour {
		t.Fatalf("SessionMaxAge=%v want=24h", cfg.SessionMaxAge)
	}
	if cfg.SessionMaxCandidates != 0 {
		t.Fatalf("SessionMaxCandidates=%d want=0", cfg.SessionMaxCandidates)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr=%q want=:8080", cfg.HTTPAddr)
	}
	if cfg.DBSchema != "velo" {
		t.Fatalf("DBSchema=%q want=velo", cfg.DBSchema)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate: want error for empty DatabaseURL")
	}

	cfg.DatabaseURL = "postgres://localhost:5432/velo"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: unexpected error: %v", err)
	}
}

func TestDerivedConfigsCarryProduction(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Production:           true,
		SessionMaxAge:        24 * time.Hour,
		SessionCookiePath:    "/",
		SessionStoreTimeout:  3 * time.Second,
		SessionMaxCandidates: 100,
		BcryptCost:           12,
	}

	sc := cfg.SessionConfig()
	if !sc.Production {
		t.Fatal("SessionConfig: production flag not propagated")
	}
	if sc.MaxCandidates != 100 {
		t.Fatalf("SessionConfig.MaxCandidates=%d want=100", sc.MaxCandidates)
	}

	dc := cfg.DigestConfig()
	if dc.Cost != 12 {
		t.Fatalf("DigestConfig.Cost=%d want=12", dc.Cost)
	}
}
