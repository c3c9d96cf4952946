package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"lead_count": 25,
		"seed": 42,
		"industries": ["SaaS", "Fintech"],
		"enrich_mode": "ai",
		"send_mode": "dry_run",
		"rate_limit": 30,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LeadCount != 25 {
		t.Errorf("LeadCount = %d, want 25", cfg.LeadCount)
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("Seed = %v, want 42", cfg.Seed)
	}
	if len(cfg.Industries) != 2 {
		t.Errorf("Industries = %v, want 2 entries", cfg.Industries)
	}
	if cfg.EnrichMode != "ai" {
		t.Errorf("EnrichMode = %q, want ai", cfg.EnrichMode)
	}
	if cfg.RateLimit != 30 {
		t.Errorf("RateLimit = %d, want 30", cfg.RateLimit)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{"lead_count": `)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero config is valid", func(c *Config) { *c = Config{} }, false},
		{"lead count too high", func(c *Config) { c.LeadCount = 1001 }, true},
		{"bad enrich mode", func(c *Config) { c.EnrichMode = "psychic" }, true},
		{"bad send mode", func(c *Config) { c.SendMode = "carrier_pigeon" }, true},
		{"bad channel", func(c *Config) { c.Channel = "fax" }, true},
		{"bad channels entry", func(c *Config) { c.Channels = []string{"email", "fax"} }, true},
		{"rate limit too high", func(c *Config) { c.RateLimit = 61 }, true},
		{"too many retries", func(c *Config) { c.MaxRetries = 6 }, true},
		{"batch too large", func(c *Config) { c.BatchSize = 201 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{LeadCount: 50, SendMode: "live"}
	merged := partial.MergeWithDefaults(Defaults())

	if merged.LeadCount != 50 {
		t.Errorf("LeadCount = %d, want explicit 50", merged.LeadCount)
	}
	if merged.SendMode != "live" {
		t.Errorf("SendMode = %q, want explicit live", merged.SendMode)
	}
	if merged.EnrichMode != "offline" {
		t.Errorf("EnrichMode = %q, want default offline", merged.EnrichMode)
	}
	if merged.RateLimit != 10 {
		t.Errorf("RateLimit = %d, want default 10", merged.RateLimit)
	}
	if len(merged.Channels) != 2 {
		t.Errorf("Channels = %v, want both defaults", merged.Channels)
	}
}
