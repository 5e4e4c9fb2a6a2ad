package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "AI_SERVICE_URL", "AI_SERVICE_TIMEOUT", "JWT_EXPIRY", "AI_RATE_LIMIT_RPS", "AI_RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8082" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8082")
	}
	if cfg.AIServiceURL != "http://localhost:5000" {
		t.Errorf("AIServiceURL = %q, want %q", cfg.AIServiceURL, "http://localhost:5000")
	}
	if cfg.AIServiceTimeout != 5*time.Second {
		t.Errorf("AIServiceTimeout = %v, want 5s", cfg.AIServiceTimeout)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if cfg.AIRateLimitRPS != 5 || cfg.AIRateLimitBurst != 10 {
		t.Errorf("rate limit = %v/%d, want 5/10", cfg.AIRateLimitRPS, cfg.AIRateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("AI_SERVICE_URL", "http://predictor:5000")
	t.Setenv("AI_SERVICE_TIMEOUT", "2s")
	t.Setenv("AI_RATE_LIMIT_BURST", "3")

	cfg := Load()

	if cfg.AIServiceURL != "http://predictor:5000" {
		t.Errorf("AIServiceURL = %q", cfg.AIServiceURL)
	}
	if cfg.AIServiceTimeout != 2*time.Second {
		t.Errorf("AIServiceTimeout = %v, want 2s", cfg.AIServiceTimeout)
	}
	if cfg.AIRateLimitBurst != 3 {
		t.Errorf("AIRateLimitBurst = %d, want 3", cfg.AIRateLimitBurst)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("AI_SERVICE_TIMEOUT", "soon")
	t.Setenv("AI_RATE_LIMIT_RPS", "fast")

	cfg := Load()

	if cfg.AIServiceTimeout != 5*time.Second {
		t.Errorf("AIServiceTimeout = %v, want default 5s", cfg.AIServiceTimeout)
	}
	if cfg.AIRateLimitRPS != 5 {
		t.Errorf("AIRateLimitRPS = %v, want default 5", cfg.AIRateLimitRPS)
	}
}
