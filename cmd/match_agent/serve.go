package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-intel/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server that exposes extraction, scoring, and saved-job endpoints behind bearer-token auth.",
	RunE:  runServe,
}

var (
	serveAddr       string
	serveConfigFile string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config and MATCH_INTEL_LISTEN_ADDR)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to agent config JSON")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig(serveConfigFile)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("MATCH_INTEL_JWT_SECRET environment variable is required")
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	prefs, err := loadPrefs(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	scfg := server.Config{
		ListenAddr:  cfg.ListenAddr,
		JWTSecret:   cfg.JWTSecret,
		Preferences: prefs,
		Enricher:    newEnricher(cfg, st, log),
		Store:       st,
		Logger:      log,
	}

	srv, err := server.New(scfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
