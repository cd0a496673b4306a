package phoneAuth

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OTP.Digits != 6 {
		t.Fatalf("expected 6 digits, got %d", cfg.OTP.Digits)
	}
	if cfg.OTP.ChallengeTTL != 10*time.Minute {
		t.Fatalf("expected 10m challenge TTL, got %v", cfg.OTP.ChallengeTTL)
	}
	if cfg.RequestLimit.MaxRequests != 3 || cfg.RequestLimit.Window != time.Hour {
		t.Fatalf("expected 3 requests per hour, got %d per %v", cfg.RequestLimit.MaxRequests, cfg.RequestLimit.Window)
	}
	if cfg.Verification.MaxFailedAttempts != 3 || cfg.Verification.FailureCounterTTL != 10*time.Minute {
		t.Fatalf("expected 3 failures per 10m, got %d per %v", cfg.Verification.MaxFailedAttempts, cfg.Verification.FailureCounterTTL)
	}
	if cfg.Lockout.Duration != 30*time.Minute {
		t.Fatalf("expected 30m lockout, got %v", cfg.Lockout.Duration)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"digits too small", func(c *Config) { c.OTP.Digits = 3 }, "Digits"},
		{"digits too large", func(c *Config) { c.OTP.Digits = 11 }, "Digits"},
		{"zero challenge ttl", func(c *Config) { c.OTP.ChallengeTTL = 0 }, "ChallengeTTL"},
		{"zero max requests", func(c *Config) { c.RequestLimit.MaxRequests = 0 }, "MaxRequests"},
		{"negative window", func(c *Config) { c.RequestLimit.Window = -time.Minute }, "Window"},
		{"zero max failures", func(c *Config) { c.Verification.MaxFailedAttempts = 0 }, "MaxFailedAttempts"},
		{"zero failure ttl", func(c *Config) { c.Verification.FailureCounterTTL = 0 }, "FailureCounterTTL"},
		{"zero lockout", func(c *Config) { c.Lockout.Duration = 0 }, "Duration"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}
