package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"paycalc/internal/domain/payroll"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("PAYROLL_WORKERS", "")
	t.Setenv("LOG_SUPPRESS", " timesheet blocked, ,payroll run completed ")

	cfg := Load()
	if cfg.Addr != ":8080" || cfg.Workers != 4 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.LogSuppress) != 2 || cfg.LogSuppress[0] != "timesheet blocked" {
		t.Fatalf("unexpected suppress list %q", cfg.LogSuppress)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PAYROLL_WORKERS", "many")
	t.Setenv("METRICS_ENABLED", "nope")
	cfg := Load()
	if cfg.Workers != 4 || !cfg.MetricsEnabled {
		t.Fatalf("expected fallbacks, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Workers: 1, MaxBodyBytes: 4096, RateLimitPerMinute: 10, LogLevel: "info"}

	prod := base
	prod.Environment = "production"
	if err := prod.Validate(); err == nil {
		t.Fatal("expected missing JWT_SECRET to fail in production")
	}
	prod.JWTSecret = "secret"
	prod.PayslipDir = "/var/payslips"
	if err := prod.Validate(); err == nil {
		t.Fatal("expected missing PAYSLIP_KEY to fail in production")
	}

	level := base
	level.LogLevel = "verbose"
	if err := level.Validate(); err == nil {
		t.Fatal("expected bad log level to fail")
	}

	body := base
	body.MaxBodyBytes = 10
	if err := body.Validate(); err == nil {
		t.Fatal("expected small body limit to fail")
	}
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil || rules.MinimumWage != payroll.DefaultRules().MinimumWage {
		t.Fatalf("expected default rules, got %+v (%v)", rules, err)
	}

	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`{"minimumWage": 17}`), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	rules, err = LoadRules(path)
	if err != nil || rules.MinimumWage != 17 {
		t.Fatalf("expected overlaid rules, got %+v (%v)", rules, err)
	}

	if err := os.WriteFile(path, []byte(`{"payPeriodsPerYear": 0}`), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	if _, err := LoadRules(path); !errors.Is(err, payroll.ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}
}
