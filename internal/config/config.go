// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default enrichment pacing: one detail-page fetch in flight at a time with
// a fixed gap between requests.
const DefaultFetchDelay = 5 * time.Second

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Preferences string `json:"preferences,omitempty"` // Path to the preferences JSON file

	// Services
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for the intel cache and tracker
	ListenAddr  string `json:"listen_addr,omitempty"`  // HTTP API listen address
	JWTSecret   string `json:"jwt_secret,omitempty"`   // Secret for API bearer tokens

	// Behavior
	UseBrowser    bool `json:"use_browser,omitempty"`     // Render detail pages in a headless browser
	Verbose       bool `json:"verbose,omitempty"`         // Print detailed debug information
	JSONLogs      bool `json:"json_logs,omitempty"`       // Emit JSON-encoded logs
	FetchDelaySec int  `json:"fetch_delay_sec,omitempty"` // Seconds between enrichment fetches
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv fills unset fields from the environment.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.JWTSecret == "" {
		c.JWTSecret = os.Getenv("MATCH_INTEL_JWT_SECRET")
	}
	if c.ListenAddr == "" {
		c.ListenAddr = os.Getenv("MATCH_INTEL_LISTEN_ADDR")
	}
}

// FetchDelay returns the configured enrichment pacing delay.
func (c *Config) FetchDelay() time.Duration {
	if c.FetchDelaySec <= 0 {
		return DefaultFetchDelay
	}
	return time.Duration(c.FetchDelaySec) * time.Second
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.FetchDelaySec < 0 {
		return fmt.Errorf("config error: 'fetch_delay_sec' must be non-negative")
	}

	if c.Preferences != "" {
		if _, err := os.Stat(c.Preferences); os.IsNotExist(err) {
			return fmt.Errorf("config error: preferences file not found: %s", c.Preferences)
		}
	}

	return nil
}
