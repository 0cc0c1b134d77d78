package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-intel/internal/config"
	"github.com/jonathan/match-intel/internal/extract"
)

var syncProfileCmd = &cobra.Command{
	Use:   "sync-profile",
	Short: "Seed preferences from your saved freelancer profile page",
	Long:  "Extract your title, hourly rate, and skills from a saved profile page and fold them into the preferences file: the rate band brackets your listed rate and your skills join the keyword pool.",
	RunE:  runSyncProfile,
}

var (
	syncProfileFile   string
	syncProfileConfig string
)

func init() {
	syncProfileCmd.Flags().StringVarP(&syncProfileFile, "profile", "p", "", "Path to a saved profile HTML page (required)")
	syncProfileCmd.Flags().StringVarP(&syncProfileConfig, "config", "c", "", "Path to agent config JSON")

	_ = syncProfileCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(syncProfileCmd)
}

func runSyncProfile(_ *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig(syncProfileConfig)
	if err != nil {
		return err
	}
	if cfg.Preferences == "" {
		return fmt.Errorf("a preferences path is required (set 'preferences' in the config file)")
	}

	prefs, err := loadPrefs(cfg)
	if err != nil {
		return err
	}

	profileHTML, err := os.ReadFile(syncProfileFile)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}

	summary, err := extract.Profile(string(profileHTML))
	if err != nil {
		return fmt.Errorf("profile extraction failed: %w", err)
	}

	extract.ApplyProfileSync(prefs, summary)

	if err := config.SavePreferences(cfg.Preferences, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	fmt.Printf("Profile synced: %q, $%d/hr, %d keywords\n",
		summary.Title, summary.Rate, len(prefs.Keywords))
	return nil
}
