// Package main provides the entry point for the Match Intel agent CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_agent",
	Short: "Freelance job feed extraction and scoring agent",
	Long:  "Match Intel extracts structured job records from marketplace feed pages, enriches them with client intel from detail pages, and scores each job against your preference profile.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
