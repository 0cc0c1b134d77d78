package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-intel/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the REST API",
	RunE:  runToken,
}

var (
	tokenSubject    string
	tokenConfigFile string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "Subject claim for the token")
	tokenCmd.Flags().StringVarP(&tokenConfigFile, "config", "c", "", "Path to agent config JSON")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig(tokenConfigFile)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("MATCH_INTEL_JWT_SECRET environment variable is required")
	}

	token, err := server.NewJWTService(cfg.JWTSecret).GenerateToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
