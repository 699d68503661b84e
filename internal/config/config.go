package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	JWTSecret            string
	SnapshotPollInterval time.Duration
	ShutdownTimeout      time.Duration
	DateLocale           string
	DateTimezone         string
	LogLevel             string
	AdminLogin           string
	AdminPassword        string
}

const (
	defaultRunAddress           = ":8080"
	defaultJWTSecret            = "change-me-in-production"
	defaultSnapshotPollInterval = 5 * time.Second
	defaultShutdownTimeout      = 10 * time.Second
	defaultDateLocale           = "en-US"
	defaultDateTimezone         = "UTC"
	defaultLogLevel             = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		SnapshotPollInterval: getDuration(lookup, "SNAPSHOT_POLL_INTERVAL", defaultSnapshotPollInterval),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		DateLocale:           getString(lookup, "DATE_LOCALE", defaultDateLocale),
		DateTimezone:         getString(lookup, "DATE_TIMEZONE", defaultDateTimezone),
		LogLevel:             getString(lookup, "LOG_LEVEL", defaultLogLevel),
		AdminLogin:           getString(lookup, "ADMIN_LOGIN", ""),
		AdminPassword:        getString(lookup, "ADMIN_PASSWORD", ""),
	}

	fs := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.SnapshotPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Fallback interval between snapshot reloads")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.DateLocale, "locale", cfg.DateLocale, "Locale of rendered order dates")
	fs.StringVar(&cfg.DateTimezone, "tz", cfg.DateTimezone, "Time zone of rendered order dates")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level: debug, info, warn or error")
	fs.StringVar(&cfg.AdminLogin, "admin-login", cfg.AdminLogin, "Operator login seeded at start")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Operator password seeded at start")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SnapshotPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.SnapshotPollInterval < 0 {
		cfg.SnapshotPollInterval = defaultSnapshotPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if (cfg.AdminLogin == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("admin login and password must be provided together")
	}

	return cfg, nil
}

// SeedAdmin reports whether an operator account should be ensured at start.
func (c *Config) SeedAdmin() bool {
	return c.AdminLogin != "" && c.AdminPassword != ""
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
