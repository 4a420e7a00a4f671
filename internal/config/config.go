package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultRateLimitMax           = 6
	defaultRateLimitWindowSeconds = 600

	maxRateLimitMax           = 50
	maxRateLimitWindowSeconds = 3600
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogFile     string `env:"LOG_FILE"`

	// Resend (transactional email) Configuration
	ResendAPIKey       string `env:"RESEND_API_KEY"`
	FromEmail          string `env:"CONTACT_FROM_EMAIL" validate:"omitempty,email"`
	ToEmail            string `env:"CONTACT_TO_EMAIL" validate:"omitempty,email"`
	AutoReplyFromEmail string `env:"CONTACT_AUTO_REPLY_FROM_EMAIL" validate:"omitempty,email"`

	// Turnstile (bot verification) Configuration
	TurnstileSecretKey  string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileSiteKey    string `env:"TURNSTILE_SITE_KEY"`
	RawAllowedHostnames string `env:"TURNSTILE_ALLOWED_HOSTNAMES"`

	// Rate Limit Configuration (raw strings so malformed values fall back
	// to defaults instead of failing startup)
	RawRateLimitMax           string `env:"CONTACT_RATE_LIMIT_MAX"`
	RawRateLimitWindowSeconds string `env:"CONTACT_RATE_LIMIT_WINDOW_SECONDS"`

	// CORS Configuration
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Derived fields, populated by Load
	AllowedHostnames       []string `env:"-"`
	RateLimitMax           int      `env:"-"`
	RateLimitWindowSeconds int      `env:"-"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if present. godotenv does not overwrite variables that
	// are already set, so the real environment always wins.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Auto-reply sender falls back to the main sender address
	if cfg.AutoReplyFromEmail == "" {
		cfg.AutoReplyFromEmail = cfg.FromEmail
	}

	cfg.AllowedHostnames = parseHostnames(cfg.RawAllowedHostnames)
	cfg.RateLimitMax = parsePositiveInt(cfg.RawRateLimitMax, defaultRateLimitMax, maxRateLimitMax)
	cfg.RateLimitWindowSeconds = parsePositiveInt(cfg.RawRateLimitWindowSeconds, defaultRateLimitWindowSeconds, maxRateLimitWindowSeconds)

	// Set default log file if not set
	if cfg.LogFile == "" {
		cfg.LogFile = "./logs/api.log"
	}

	return cfg, nil
}

// MailConfigured reports whether the email dispatch path is provisioned.
func (c *Config) MailConfigured() bool {
	return c.ResendAPIKey != "" && c.FromEmail != "" && c.ToEmail != ""
}

// VerificationConfigured reports whether the Turnstile secret is provisioned.
func (c *Config) VerificationConfigured() bool {
	return c.TurnstileSecretKey != ""
}

// parsePositiveInt parses raw as a positive integer, falling back when the
// value is missing, malformed, or non-positive, and capping at maxValue.
func parsePositiveInt(raw string, fallback, maxValue int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || parsed <= 0 {
		return fallback
	}
	if parsed > maxValue {
		return maxValue
	}
	return parsed
}

// parseHostnames splits a comma-separated hostname list, lowercasing entries
// and dropping empty ones.
func parseHostnames(raw string) []string {
	var hostnames []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			hostnames = append(hostnames, entry)
		}
	}
	return hostnames
}
