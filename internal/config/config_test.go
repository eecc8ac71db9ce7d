package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/postcare_test")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("expected default max conns 20, got %d", cfg.DBMaxConns)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")

	_, err := Load()
	if err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/postcare_test")
	os.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("CORS_ORIGINS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(cfg.CORSOrigins))
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBMaxConns: 20, DBMinConns: 5, RateLimitRPS: 100}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BadConnBounds(t *testing.T) {
	cfg := &Config{DBMaxConns: 5, DBMinConns: 10}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for min conns > max conns")
	}
}

func TestValidate_NegativeRate(t *testing.T) {
	cfg := &Config{DBMaxConns: 20, DBMinConns: 5, RateLimitRPS: -1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative rate limit")
	}
}
