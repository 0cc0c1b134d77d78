package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-intel/internal/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Backfill deep intel onto a batch of extracted job records",
	Long:  "Read a JSON array of job records, fetch deep intel for each (paced, cache-first when a database is configured), merge it onto the records, and write the batch back out.",
	RunE:  runEnrich,
}

var (
	enrichJobsFile   string
	enrichConfigFile string
	enrichOutputFile string
)

func init() {
	enrichCmd.Flags().StringVar(&enrichJobsFile, "jobs", "", "Path to a JSON array of job records (required)")
	enrichCmd.Flags().StringVarP(&enrichConfigFile, "config", "c", "", "Path to agent config JSON")
	enrichCmd.Flags().StringVarP(&enrichOutputFile, "out", "o", "", "Path for the enriched records (defaults to --jobs, in place)")

	_ = enrichCmd.MarkFlagRequired("jobs")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(_ *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig(enrichConfigFile)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var jobs []*types.JobRecord
	if err := readJSONFile(enrichJobsFile, &jobs); err != nil {
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

	if err := newEnricher(cfg, st, log).EnrichAll(ctx, jobs); err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	out := enrichOutputFile
	if out == "" {
		out = enrichJobsFile
	}
	if err := writeJSONFile(out, jobs); err != nil {
		return err
	}

	fmt.Printf("Enriched %d jobs\n", len(jobs))
	return nil
}
