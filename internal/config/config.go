// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"VITRINA_DB_PATH" envDefault:"./data/vitrina.db"`
	SessionSecret string `env:"VITRINA_SESSION_SECRET,required"`
	ServerHost    string `env:"VITRINA_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"VITRINA_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"VITRINA_ENV" envDefault:"development"`
	LogLevel      string `env:"VITRINA_LOG_LEVEL" envDefault:"info"`

	// Seed password for the default admin account. Only used when the
	// account does not exist yet.
	AdminPassword string `env:"VITRINA_ADMIN_PASSWORD" envDefault:"admin123"`

	// Cache configuration
	RedisURL    string `env:"VITRINA_REDIS_URL"`                        // Optional Redis URL for the content cache
	CachePrefix string `env:"VITRINA_CACHE_PREFIX" envDefault:"vitrina:"` // Redis key prefix
	CacheTTL    int    `env:"VITRINA_CACHE_TTL" envDefault:"3600"`       // Content cache TTL in seconds

	// Registration notification (SMTP). Notifications are disabled when
	// SMTPHost is empty.
	SMTPHost     string `env:"VITRINA_SMTP_HOST"`
	SMTPPort     int    `env:"VITRINA_SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"VITRINA_SMTP_USER"`
	SMTPPassword string `env:"VITRINA_SMTP_PASSWORD"`
	NoticeFrom   string `env:"VITRINA_NOTICE_FROM"`
	NoticeTo     string `env:"VITRINA_NOTICE_TO"`
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// NotificationsEnabled returns true if outbound registration notices are configured.
func (c Config) NotificationsEnabled() bool {
	return c.SMTPHost != "" && c.NoticeTo != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("VITRINA_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}
