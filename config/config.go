// Package config loads runtime settings from the environment.
// Every collaborator is optional: a missing credential disables that step instead of failing start-up.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application settings
type Config struct {
	Port string
	Env  string

	ResendAPIKey string
	AdminEmail   string
	FromEmail    string

	GoogleMapsAPIKey   string
	TurnstileSecretKey string

	SheetsID                 string
	ServiceAccountEmail      string
	ServiceAccountPrivateKey string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	CatalogImageDir string
	ImageCacheDir   string

	DispatchTimeout time.Duration
	DispatchWorkers int
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads the configuration through v, which lets callers layer a config file or flags
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("CATALOG_IMAGE_DIR", "static/calculator")
	v.SetDefault("IMAGE_CACHE_DIR", "cache/images")
	v.SetDefault("DISPATCH_TIMEOUT", "30s")
	v.SetDefault("DISPATCH_WORKERS", 16)

	timeout, err := time.ParseDuration(v.GetString("DISPATCH_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse DISPATCH_TIMEOUT: %w", err)
	}

	workers := v.GetInt("DISPATCH_WORKERS")
	if workers <= 0 {
		return nil, fmt.Errorf("DISPATCH_WORKERS must be greater than 0, got %d", workers)
	}

	cfg := &Config{
		Port:                     strings.TrimPrefix(v.GetString("PORT"), ":"),
		Env:                      v.GetString("ENV"),
		ResendAPIKey:             v.GetString("RESEND_API_KEY"),
		AdminEmail:               v.GetString("ADMIN_EMAIL"),
		FromEmail:                v.GetString("FROM_EMAIL"),
		GoogleMapsAPIKey:         v.GetString("GOOGLE_MAPS_API_KEY"),
		TurnstileSecretKey:       v.GetString("TURNSTILE_SECRET_KEY"),
		SheetsID:                 v.GetString("GOOGLE_SHEETS_ID"),
		ServiceAccountEmail:      v.GetString("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		ServiceAccountPrivateKey: v.GetString("GOOGLE_SERVICE_ACCOUNT_KEY"),
		DatabaseURL:              v.GetString("DATABASE_URL"),
		DBHost:                   v.GetString("DB_HOST"),
		DBPort:                   v.GetString("DB_PORT"),
		DBUser:                   v.GetString("DB_USER"),
		DBPassword:               v.GetString("DB_PASSWORD"),
		DBName:                   v.GetString("DB_NAME"),
		DBSSLMode:                v.GetString("DB_SSLMODE"),
		CatalogImageDir:          v.GetString("CATALOG_IMAGE_DIR"),
		ImageCacheDir:            v.GetString("IMAGE_CACHE_DIR"),
		DispatchTimeout:          timeout,
		DispatchWorkers:          workers,
	}
	return cfg, nil
}

// IsProduction reports whether ENV is "production"
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// EmailEnabled reports whether notification emails can be sent
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != "" && c.AdminEmail != "" && c.FromEmail != ""
}

// SheetsEnabled reports whether rows can be appended to the spreadsheet
func (c *Config) SheetsEnabled() bool {
	return c.SheetsID != "" && c.ServiceAccountEmail != "" && c.ServiceAccountPrivateKey != ""
}

// VerificationEnabled reports whether human verification tokens are checked
func (c *Config) VerificationEnabled() bool {
	return c.TurnstileSecretKey != ""
}

// DistanceProviderEnabled reports whether the road distance provider is configured
func (c *Config) DistanceProviderEnabled() bool {
	return c.GoogleMapsAPIKey != ""
}

// DatabaseEnabled reports whether submissions are recorded in the database
func (c *Config) DatabaseEnabled() bool {
	return c.DatabaseURL != "" || (c.DBHost != "" && c.DBUser != "" && c.DBName != "")
}

// DatabaseConnString returns DATABASE_URL, or a key/value connection string built
// from the individual DB_* variables
func (c *Config) DatabaseConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
