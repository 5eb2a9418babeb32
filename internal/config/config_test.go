package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ProductLimit != 5 {
		t.Errorf("ProductLimit = %d, want 5", cfg.ProductLimit)
	}
	if cfg.SessionTTL != 60*time.Minute {
		t.Errorf("SessionTTL = %v, want 60m", cfg.SessionTTL)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("SweepInterval = %v, want 5m", cfg.SweepInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ANALYZER_URL", "http://scorer:8500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.AnalyzerURL != "http://scorer:8500" {
		t.Errorf("AnalyzerURL = %q", cfg.AnalyzerURL)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"zero sweep", func(c *Config) { c.SweepInterval = 0 }},
		{"zero product limit", func(c *Config) { c.ProductLimit = 0 }},
		{"empty upload dir", func(c *Config) { c.UploadDir = "" }},
	}

	for _, tt := range tests {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		tt.mod(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate accepted an invalid config", tt.name)
		}
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{FrontendURL: ""}
	if !cfg.IsDevelopment() {
		t.Error("Empty frontend URL should mean development")
	}
	cfg.FrontendURL = "https://apsara.example.com"
	if cfg.IsDevelopment() {
		t.Error("Production frontend URL flagged as development")
	}
}
