// Package config provides application configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL"`

	ProductsCSVPath string `env:"PRODUCTS_CSV_PATH" envDefault:"./data/products.csv"`
	CatalogDBPath   string `env:"CATALOG_DB_PATH" envDefault:"./data/catalog.db"`
	UploadDir       string `env:"UPLOAD_DIR" envDefault:"./uploads"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"60m"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
	ProductLimit  int           `env:"PRODUCT_LIMIT" envDefault:"5"`

	AnalyzerURL     string        `env:"ANALYZER_URL"`
	AnalyzerTimeout time.Duration `env:"ANALYZER_TIMEOUT" envDefault:"15s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.CatalogDBPath == "" {
		return fmt.Errorf("CATALOG_DB_PATH cannot be empty")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be > 0")
	}
	if c.ProductLimit <= 0 {
		return fmt.Errorf("PRODUCT_LIMIT must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}
