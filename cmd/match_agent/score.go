package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-intel/internal/extract"
	"github.com/jonathan/match-intel/internal/observability"
	"github.com/jonathan/match-intel/internal/scoring"
	"github.com/jonathan/match-intel/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single job against your preferences",
	Long:  "Score one job record, given either a saved tile HTML fragment or a previously extracted record JSON, and print the match report.",
	RunE:  runScore,
}

var (
	scoreTileFile   string
	scoreJobFile    string
	scoreConfigFile string
	scoreOutputFile string
	scoreEnrich     bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreTileFile, "tile", "", "Path to a saved job tile HTML fragment")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to a job record JSON file")
	scoreCmd.Flags().StringVarP(&scoreConfigFile, "config", "c", "", "Path to agent config JSON")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to write the scored record as JSON")
	scoreCmd.Flags().BoolVar(&scoreEnrich, "enrich", false, "Fetch the detail page for deep intel before scoring")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	if (scoreTileFile == "") == (scoreJobFile == "") {
		return fmt.Errorf("exactly one of --tile or --job is required")
	}

	cfg, err := loadAgentConfig(scoreConfigFile)
	if err != nil {
		return err
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

	var job *types.JobRecord
	if scoreTileFile != "" {
		tileHTML, err := os.ReadFile(scoreTileFile)
		if err != nil {
			return fmt.Errorf("failed to read tile file: %w", err)
		}
		job, err = extract.Listing(string(tileHTML))
		if err != nil {
			return fmt.Errorf("tile extraction failed: %w", err)
		}
	} else {
		job = &types.JobRecord{}
		if err := readJSONFile(scoreJobFile, job); err != nil {
			return err
		}
	}

	if scoreEnrich {
		ctx := context.Background()
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		deep, err := newEnricher(cfg, st, log).Intel(ctx, job.Link)
		if err != nil {
			return fmt.Errorf("enrichment failed: %w", err)
		}
		deep.ApplyTo(job)
	}

	result := scoring.NewScorer(prefs).Score(job)

	observability.NewPrinter(os.Stdout).PrintJobReport(job, result)

	if scoreOutputFile != "" {
		return writeJSONFile(scoreOutputFile, scannedJob{Job: job, Result: result})
	}
	return nil
}
