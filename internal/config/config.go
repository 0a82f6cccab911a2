// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultDBPassword    = "changeme"
	defaultJWTSecret     = "dev-only-jwt-secret-change-me"
	defaultAdminPassword = "admin"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host    string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port    string `env:"APP_PORT" envDefault:"8080"`
	Env     string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// SiteName is shown in the storefront header and on PDF catalogs.
	SiteName string `env:"SITE_NAME" envDefault:"Product Catalog"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"catalog"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"catalog"`

	// Valkey (sessions + storefront page cache)
	ValkeyHost     string `env:"VALKEY_HOST" envDefault:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// S3-compatible object storage for uploads
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" envDefault:"auto"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"catalog-public"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	// Admin login
	AdminEmail        string        `env:"ADMIN_EMAIL" envDefault:"admin@catalog.local"`
	AdminPassword     string        `env:"ADMIN_PASSWORD" envDefault:"admin"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"` // bcrypt; wins over ADMIN_PASSWORD
	AdminTOTPSecret   string        `env:"ADMIN_TOTP_SECRET"`
	JWTSecret         string        `env:"JWT_SECRET" envDefault:"dev-only-jwt-secret-change-me"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// Public forms
	CaptchaValue string `env:"CAPTCHA_VALUE" envDefault:"1234"`

	// Lead notifications; disabled when SMTPHost is empty.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"noreply@catalog.local"`
	NotifyEmail  string `env:"NOTIFY_EMAIL"`

	// Catalog PDF generation
	ChromePath       string        `env:"CHROME_PATH"`
	PDFTimeout       time.Duration `env:"PDF_TIMEOUT" envDefault:"45s"`
	CatalogCoverPath string        `env:"CATALOG_COVER_PATH"`
}

// Load reads configuration from a .env file (when present) and the
// environment, applying defaults for development. Returns an error if
// secrets are left at their development defaults in production mode.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == defaultDBPassword {
			return nil, errors.New("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		if cfg.AdminPasswordHash == "" && cfg.AdminPassword == defaultAdminPassword {
			return nil, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StorageEnabled reports whether object storage credentials are configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
