// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Generation
	LeadCount  int      `json:"lead_count,omitempty"` // Leads to generate per run
	Seed       *int64   `json:"seed,omitempty"`       // Deterministic generation seed
	Industries []string `json:"industries,omitempty"` // Restrict generation to these industries

	// Enrichment
	EnrichMode string `json:"enrich_mode,omitempty"` // "offline" or "ai"
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key for AI enrichment

	// Messaging
	Channels   []string `json:"channels,omitempty"`    // Channels to draft for
	ABVariants bool     `json:"ab_variants,omitempty"` // Draft both A and B variants

	// Delivery
	SendMode   string `json:"send_mode,omitempty"`   // "dry_run" or "live"
	Channel    string `json:"channel,omitempty"`     // Channel to send on
	RateLimit  int    `json:"rate_limit,omitempty"`  // Sends per minute
	MaxRetries int    `json:"max_retries,omitempty"` // Extra attempts after the first
	BatchSize  int    `json:"batch_size,omitempty"`  // Leads per delivery batch

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed progress
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty runs in-memory
}

// Defaults returns the configuration used when nothing is specified.
func Defaults() Config {
	return Config{
		LeadCount:  10,
		EnrichMode: "offline",
		Channels:   []string{"email", "linkedin"},
		ABVariants: true,
		SendMode:   "dry_run",
		Channel:    "email",
		RateLimit:  10,
		MaxRetries: 3,
		BatchSize:  10,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.LeadCount < 0 || c.LeadCount > 1000 {
		return fmt.Errorf("config error: 'lead_count' must be between 0 and 1000")
	}
	if c.EnrichMode != "" && c.EnrichMode != "offline" && c.EnrichMode != "ai" {
		return fmt.Errorf("config error: 'enrich_mode' must be 'offline' or 'ai'")
	}
	if c.SendMode != "" && c.SendMode != "dry_run" && c.SendMode != "live" {
		return fmt.Errorf("config error: 'send_mode' must be 'dry_run' or 'live'")
	}
	if c.Channel != "" && c.Channel != "email" && c.Channel != "linkedin" {
		return fmt.Errorf("config error: 'channel' must be 'email' or 'linkedin'")
	}
	for _, ch := range c.Channels {
		if ch != "email" && ch != "linkedin" {
			return fmt.Errorf("config error: unknown channel %q in 'channels'", ch)
		}
	}
	if c.RateLimit < 0 || c.RateLimit > 60 {
		return fmt.Errorf("config error: 'rate_limit' must be between 0 and 60")
	}
	if c.MaxRetries < 0 || c.MaxRetries > 5 {
		return fmt.Errorf("config error: 'max_retries' must be between 0 and 5")
	}
	if c.BatchSize < 0 || c.BatchSize > 200 {
		return fmt.Errorf("config error: 'batch_size' must be between 0 and 200")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.LeadCount == 0 {
		result.LeadCount = defaults.LeadCount
	}
	if result.Seed == nil {
		result.Seed = defaults.Seed
	}
	if len(result.Industries) == 0 {
		result.Industries = defaults.Industries
	}
	if result.EnrichMode == "" {
		result.EnrichMode = defaults.EnrichMode
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if len(result.Channels) == 0 {
		result.Channels = defaults.Channels
	}
	if result.SendMode == "" {
		result.SendMode = defaults.SendMode
	}
	if result.Channel == "" {
		result.Channel = defaults.Channel
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	return result
}
