package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"paycalc/internal/domain/payroll"
)

type Config struct {
	Addr               string
	Environment        string
	DatabaseURL        string
	JWTSecret          string
	PayslipKey         string
	PayslipDir         string
	RulesFile          string
	Workers            int
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
	LogLevel           string
	LogSuppress        []string
	RunMigrations      bool
	MigrationsDir      string
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		PayslipKey:         getEnv("PAYSLIP_KEY", ""),
		PayslipDir:         getEnv("PAYSLIP_DIR", ""),
		RulesFile:          getEnv("PAYROLL_RULES_FILE", ""),
		Workers:            getEnvInt("PAYROLL_WORKERS", 4),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogSuppress:        getEnvList("LOG_SUPPRESS"),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (c Config) Validate() error {
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.PayslipDir != "" && strings.TrimSpace(c.PayslipKey) == "" {
			return fmt.Errorf("PAYSLIP_KEY must be set in production when PAYSLIP_DIR is used")
		}
	}
	if c.Workers <= 0 {
		return fmt.Errorf("PAYROLL_WORKERS must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}

// LoadRules returns the default rules when path is empty, otherwise the file
// overlaid on the defaults.
func LoadRules(path string) (payroll.Rules, error) {
	if path == "" {
		return payroll.DefaultRules(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return payroll.Rules{}, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()
	return payroll.ReadRules(f)
}
