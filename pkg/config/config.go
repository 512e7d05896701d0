// Package config loads service configuration from defaults, an optional YAML
// file and ROLES_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr" validate:"required"`

	// GinMode is passed to gin.SetMode.
	GinMode string `koanf:"gin_mode" validate:"oneof=debug release test"`

	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`
	LogFile   string `koanf:"log_file"`

	// DatabaseURL selects PostgreSQL; SQLite at DataPath is used otherwise.
	DatabaseURL string `koanf:"database_url"`
	DataPath    string `koanf:"data_path"`

	JWTSecret string        `koanf:"jwt_secret" validate:"required,min=16"`
	TokenTTL  time.Duration `koanf:"token_ttl" validate:"gt=0"`

	// Default team lead created on first start when no user exists.
	AdminEmail    string `koanf:"admin_email" validate:"omitempty,email"`
	AdminPassword string `koanf:"admin_password"`
	AdminTeam     string `koanf:"admin_team"`

	// CatalogPath points at a YAML role catalog; empty uses the built-in one.
	CatalogPath string `koanf:"catalog_path"`

	// Timezone meeting hours are interpreted in.
	Timezone string `koanf:"timezone" validate:"required"`

	DecayPerHour float64 `koanf:"decay_per_hour" validate:"gt=0"`
	SoftMargin   float64 `koanf:"soft_margin" validate:"gt=0"`

	// HistoryLimit must reach the exclusion streak to detect it.
	HistoryLimit int `koanf:"history_limit" validate:"min=4"`

	StoreTimeout time.Duration `koanf:"store_timeout" validate:"gt=0"`
	RetryBackoff time.Duration `koanf:"retry_backoff" validate:"gte=0"`
}

// New returns a Config populated with defaults
func New() *Config {
	return &Config{
		Addr:          ":8000",
		GinMode:       "release",
		LogLevel:      "info",
		LogFormat:     "console",
		DataPath:      "roles.db",
		JWTSecret:     "demo-secret-key-change-in-production",
		TokenTTL:      24 * time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
		AdminTeam:     "Default team",
		Timezone:      "UTC",
		DecayPerHour:  100.0 / 12.0,
		SoftMargin:    20,
		HistoryLimit:  10,
		StoreTimeout:  5 * time.Second,
		RetryBackoff:  200 * time.Millisecond,
	}
}

// Validate checks field constraints and that the time zone exists
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidConfig, err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, cfg.Timezone, err)
	}
	return nil
}

// Location returns the configured scheduling time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
