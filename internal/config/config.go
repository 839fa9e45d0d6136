// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Headless CMS
	CMSURL     string
	CMSToken   string
	CMSTimeout time.Duration

	// Public site
	SiteURL  string // canonical origin, no trailing slash
	SiteName string

	// Valkey (Redis-compatible cache). ValkeyURL wins when set.
	ValkeyURL      string
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	CacheTTL       time.Duration

	// Selection store
	SelectWait   time.Duration // how long a tab switch waits for its fetch
	StoreIdleTTL time.Duration

	// Grid column count used until the browser reports its width
	GridDefaultColumns int

	// CMS webhook shared secret; empty disables the webhook route
	WebhookSecret string

	// Per-client limit on POST routes
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value is
// malformed or critical values are missing in production mode.
func Load() (*Config, error) {
	p := &parser{}
	cfg := &Config{
		Host:     envOrDefault("APP_HOST", "0.0.0.0"),
		Port:     envOrDefault("APP_PORT", "8080"),
		Env:      envOrDefault("APP_ENV", "development"),
		LogLevel: envOrDefault("LOG_LEVEL", "info"),

		ReadTimeout:  p.duration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: p.duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  p.duration("HTTP_IDLE_TIMEOUT", 60*time.Second),

		CMSURL:     strings.TrimRight(os.Getenv("CMS_URL"), "/"),
		CMSToken:   os.Getenv("CMS_TOKEN"),
		CMSTimeout: p.duration("CMS_TIMEOUT", 10*time.Second),

		SiteURL:  strings.TrimRight(envOrDefault("SITE_URL", "http://localhost:8080"), "/"),
		SiteName: envOrDefault("SITE_NAME", "Pulse Report"),

		ValkeyURL:      os.Getenv("VALKEY_URL"),
		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		CacheTTL:       p.duration("CACHE_TTL", 5*time.Minute),

		SelectWait:   p.duration("SELECT_WAIT", 3*time.Second),
		StoreIdleTTL: p.duration("STORE_IDLE_TTL", 30*time.Minute),

		GridDefaultColumns: p.integer("GRID_DEFAULT_COLUMNS", 3),

		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),

		RateLimitRPS:   p.float("RATE_LIMIT_RPS", 5),
		RateLimitBurst: p.integer("RATE_LIMIT_BURST", 20),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.GridDefaultColumns < 1 || cfg.GridDefaultColumns > 4 {
		return nil, fmt.Errorf("GRID_DEFAULT_COLUMNS must be between 1 and 4, got %d", cfg.GridDefaultColumns)
	}

	if cfg.Env == "production" {
		var missing []string
		if cfg.CMSURL == "" {
			missing = append(missing, "CMS_URL")
		}
		if cfg.CMSToken == "" {
			missing = append(missing, "CMS_TOKEN")
		}
		if os.Getenv("SITE_URL") == "" {
			missing = append(missing, "SITE_URL")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%s must be set in production", strings.Join(missing, ", "))
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CMSConfigured reports whether both the CMS endpoint and token are set.
func (c *Config) CMSConfigured() bool {
	return c.CMSURL != "" && c.CMSToken != ""
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser reads typed variables and keeps every parse failure.
type parser struct {
	err error
}

func (p *parser) fail(key, v string, err error) {
	p.err = errors.Join(p.err, fmt.Errorf("invalid %s %q: %w", key, v, err))
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return d
}

func (p *parser) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return f
}
