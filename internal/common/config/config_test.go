package config

import (
	"errors"
	"os"
	"testing"
	"time"

	commonerrors "github.com/creativestories/backend/internal/common/errors"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("NEWSLETTER_API_KEY", "secret-key")
}

// unsetEnv removes a variable for the duration of the test. t.Setenv is
// called first so the original value is restored on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("NEWSLETTER_API_KEY", "secret-key")

	_, err := Load()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("NEWSLETTER_API_KEY", "")

	_, err := Load()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{"HTTP_PORT", "MONGODB_DATABASE", "SITE_URL", "SMTP_SERVER", "SMTP_PORT", "SMTP_FROM", "SMTP_USER", "REQUEST_TIMEOUT"} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("unexpected port: %q", cfg.HTTPPort)
	}
	if cfg.MongoDatabase != "creative_stories" {
		t.Errorf("unexpected database: %q", cfg.MongoDatabase)
	}
	if cfg.SiteURL != "http://localhost:3000" {
		t.Errorf("unexpected site url: %q", cfg.SiteURL)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("unexpected smtp port: %d", cfg.SMTPPort)
	}
	if cfg.SMTPConfigured() {
		t.Error("expected SMTP to be unconfigured without a server and sender")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer@example.com")
	unsetEnv(t, "SMTP_FROM")
	t.Setenv("REQUEST_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "9090" {
		t.Errorf("unexpected port: %q", cfg.HTTPPort)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("unexpected request timeout: %v", cfg.RequestTimeout)
	}
	if cfg.SMTPFrom != "mailer@example.com" {
		t.Errorf("expected the sender to default to the SMTP user, got %q", cfg.SMTPFrom)
	}
	if !cfg.SMTPConfigured() {
		t.Error("expected SMTP to be configured")
	}
}

func TestGetDurationEnv_InvalidFallsBack(t *testing.T) {
	t.Setenv("DISPATCH_TIMEOUT", "not-a-duration")

	if got := getDurationEnv("DISPATCH_TIMEOUT", 30*time.Second); got != 30*time.Second {
		t.Errorf("expected fallback, got %v", got)
	}
}
