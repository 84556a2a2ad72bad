package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		// Setenv registers the restore; Unsetenv then clears it for this test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "DATABASE_DRIVER", "REDIS_ENABLED", "PASSWORD_MIN_STRENGTH",
		"RATE_LIMIT_WINDOW", "RATE_LIMIT_LOGIN_MAX_ATTEMPTS", "SERVER_PORT",
		"PASSWORD_RESET_EXPIRY", "RESEND_API_KEY", "EMAIL_WORKER_BATCH_SIZE")

	cfg := Load()

	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected driver %s, got %s", DriverPostgres, cfg.Database.Driver)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis to be enabled by default")
	}
	if cfg.Password.MinStrength != "Moderate" {
		t.Errorf("expected Moderate, got %s", cfg.Password.MinStrength)
	}
	if cfg.RateLimit.Window != 15*time.Minute || cfg.RateLimit.LoginMaxAttempts != 5 {
		t.Errorf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Password.ResetTokenExpiry != time.Hour {
		t.Errorf("expected reset links to last 1h, got %v", cfg.Password.ResetTokenExpiry)
	}
	if cfg.Email.ResendAPIKey != "" || cfg.Email.BatchSize != 10 {
		t.Errorf("unexpected email defaults %+v", cfg.Email)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("RATE_LIMIT_STRENGTH_MAX_ATTEMPTS", "10")
	t.Setenv("PASSWORD_MIN_STRENGTH", "Strong")

	cfg := Load()

	if cfg.Database.Driver != DriverSQLite || cfg.Database.URL != "file::memory:" {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis to be disabled")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.RateLimit.Window != time.Minute || cfg.RateLimit.StrengthMaxAttempts != 10 {
		t.Errorf("unexpected rate limit config %+v", cfg.RateLimit)
	}
	if cfg.Password.MinStrength != "Strong" {
		t.Errorf("expected Strong, got %s", cfg.Password.MinStrength)
	}
}

func TestEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_DURATION", "soon")

	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	if got := getEnvAsBool("TEST_BOOL", true); !got {
		t.Error("expected fallback true")
	}
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("expected fallback 1s, got %v", got)
	}
	if got := getEnv("TEST_UNSET_KEY_PASSMETER", "default"); got != "default" {
		t.Errorf("expected default, got %s", got)
	}
}
