package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List jobs saved to the tracker",
	RunE:  runSaved,
}

var (
	savedConfigFile string
	savedOutputFile string
)

func init() {
	savedCmd.Flags().StringVarP(&savedConfigFile, "config", "c", "", "Path to agent config JSON")
	savedCmd.Flags().StringVarP(&savedOutputFile, "out", "o", "", "Path to write the saved jobs as JSON")
	rootCmd.AddCommand(savedCmd)
}

func runSaved(_ *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig(savedConfigFile)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	jobs, err := st.ListSavedJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list saved jobs: %w", err)
	}

	for _, sj := range jobs {
		marker := " "
		if sj.AutoSaved {
			marker = "*"
		}
		fmt.Printf("%s %3d  %s  %s\n", marker, sj.Score, sj.SavedAt.Format("2006-01-02"), sj.Job.Title)
	}
	fmt.Printf("%d saved jobs (* auto-saved)\n", len(jobs))

	if savedOutputFile != "" {
		return writeJSONFile(savedOutputFile, jobs)
	}
	return nil
}
