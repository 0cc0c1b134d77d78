package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/match-intel/internal/config"
	"github.com/jonathan/match-intel/internal/enrich"
	"github.com/jonathan/match-intel/internal/logger"
	"github.com/jonathan/match-intel/internal/store"
	"github.com/jonathan/match-intel/internal/types"
)

// loadAgentConfig loads the optional config file, layers the environment on
// top, and validates the result. An empty path yields an env-only config.
func loadAgentConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadPrefs loads preferences from the path named in the config, falling
// back to defaults when no path is configured.
func loadPrefs(cfg *config.Config) (*types.Preferences, error) {
	prefs, err := config.LoadPreferences(cfg.Preferences)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs, nil
}

// newLogger builds the process logger from config flags.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Verbose)
}

// openStore connects to PostgreSQL and ensures the schema. Returns nil
// without error when no database URL is configured; callers treat a nil
// store as "caching and tracking disabled".
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return st, nil
}

// readJSONFile reads path and unmarshals it into v.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// newEnricher wires the enrichment pipeline. A nil store disables the
// intel cache but enrichment still works, it just refetches every time.
func newEnricher(cfg *config.Config, st *store.Store, log *zap.Logger) *enrich.Enricher {
	ecfg := enrich.Config{
		Delay:      cfg.FetchDelay(),
		UseBrowser: cfg.UseBrowser,
		Logger:     log,
	}
	if st != nil {
		ecfg.Cache = st
	}
	return enrich.New(ecfg)
}
