package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-intel/internal/intel"
	"github.com/jonathan/match-intel/internal/observability"
	"github.com/jonathan/match-intel/internal/types"
)

var intelCmd = &cobra.Command{
	Use:   "intel",
	Short: "Extract deep client intel from a job detail page",
	Long:  "Extract client and activity intel from a job detail page, given either saved page HTML or a job link to fetch. Fetched intel is cached when a database is configured.",
	RunE:  runIntel,
}

var (
	intelDetailFile string
	intelLink       string
	intelConfigFile string
	intelOutputFile string
)

func init() {
	intelCmd.Flags().StringVar(&intelDetailFile, "detail", "", "Path to a saved job detail HTML page")
	intelCmd.Flags().StringVar(&intelLink, "link", "", "Job link to fetch and parse")
	intelCmd.Flags().StringVarP(&intelConfigFile, "config", "c", "", "Path to agent config JSON")
	intelCmd.Flags().StringVarP(&intelOutputFile, "out", "o", "", "Path to write the intel record as JSON")

	rootCmd.AddCommand(intelCmd)
}

func runIntel(_ *cobra.Command, _ []string) error {
	if (intelDetailFile == "") == (intelLink == "") {
		return fmt.Errorf("exactly one of --detail or --link is required")
	}

	cfg, err := loadAgentConfig(intelConfigFile)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var deep *types.DeepIntel
	if intelDetailFile != "" {
		detailHTML, err := os.ReadFile(intelDetailFile)
		if err != nil {
			return fmt.Errorf("failed to read detail file: %w", err)
		}
		deep = intel.Parse(string(detailHTML))
	} else {
		ctx := context.Background()
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		deep, err = newEnricher(cfg, st, log).Intel(ctx, intelLink)
		if err != nil {
			return fmt.Errorf("intel fetch failed: %w", err)
		}
	}

	if deep == nil {
		fmt.Println("No intel could be extracted")
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintIntel(deep)

	if intelOutputFile != "" {
		return writeJSONFile(intelOutputFile, deep)
	}
	return nil
}
