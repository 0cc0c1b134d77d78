package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/match-intel/internal/extract"
	"github.com/jonathan/match-intel/internal/notify"
	"github.com/jonathan/match-intel/internal/observability"
	"github.com/jonathan/match-intel/internal/scoring"
	"github.com/jonathan/match-intel/internal/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Extract and score every new job on a feed page",
	Long:  "Scan a saved feed page, extract a job record from each unseen tile, optionally enrich each record with client intel, score the batch, and report the matches.",
	RunE:  runScan,
}

var (
	scanFeedFile      string
	scanConfigFile    string
	scanProcessedFile string
	scanOutputFile    string
	scanEnrich        bool
	scanWebhookURL    string
)

func init() {
	scanCmd.Flags().StringVarP(&scanFeedFile, "feed", "f", "", "Path to a saved feed HTML page (required)")
	scanCmd.Flags().StringVarP(&scanConfigFile, "config", "c", "", "Path to agent config JSON")
	scanCmd.Flags().StringVar(&scanProcessedFile, "processed", "", "Path to a JSON array of already-processed job links; updated after the scan")
	scanCmd.Flags().StringVarP(&scanOutputFile, "out", "o", "", "Path to write scored records as JSON")
	scanCmd.Flags().BoolVar(&scanEnrich, "enrich", false, "Fetch detail pages for deep intel before scoring")
	scanCmd.Flags().StringVar(&scanWebhookURL, "webhook", "", "Webhook URL for high-match notifications")

	_ = scanCmd.MarkFlagRequired("feed")
	rootCmd.AddCommand(scanCmd)
}

// scannedJob pairs a record with its score for output.
type scannedJob struct {
	Job    *types.JobRecord   `json:"job"`
	Result *types.ScoreResult `json:"result"`
}

func runScan(_ *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig(scanConfigFile)
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

	feedHTML, err := os.ReadFile(scanFeedFile)
	if err != nil {
		return fmt.Errorf("failed to read feed file: %w", err)
	}

	processed, err := loadProcessed(scanProcessedFile)
	if err != nil {
		return err
	}

	jobs, err := extract.ScanFeed(string(feedHTML), processed)
	if err != nil {
		return fmt.Errorf("feed scan failed: %w", err)
	}
	log.Info("feed scanned", zap.Int("new_jobs", len(jobs)))

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	if scanEnrich {
		enricher := newEnricher(cfg, st, log)
		if err := enricher.EnrichAll(ctx, jobs); err != nil {
			return fmt.Errorf("enrichment failed: %w", err)
		}
	}

	scorer := scoring.NewScorer(prefs)
	scored := make([]scannedJob, 0, len(jobs))
	results := make([]*types.ScoreResult, 0, len(jobs))
	for _, job := range jobs {
		result := scorer.Score(job)
		scored = append(scored, scannedJob{Job: job, Result: result})
		results = append(results, result)
	}

	var notifier notify.Notifier
	if scanWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(scanWebhookURL, log)
	}

	for _, sj := range scored {
		if sj.Result.Total < prefs.MinScoreToNotify {
			continue
		}
		if notifier != nil {
			if err := notifier.NotifyHighMatch(ctx, sj.Job, sj.Result.Total); err != nil {
				log.Warn("notification failed", zap.String("link", sj.Job.Link), zap.Error(err))
			}
		}
		if st != nil && prefs.AutoSaveEnabled() {
			inserted, err := st.SaveJob(ctx, sj.Job, sj.Result.Total, true)
			if err != nil {
				log.Warn("auto-save failed", zap.String("link", sj.Job.Link), zap.Error(err))
			} else if inserted {
				log.Info("job auto-saved", zap.String("link", sj.Job.Link), zap.Int("score", sj.Result.Total))
			}
		}
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintScanSummary(jobs, results)
	}

	if scanOutputFile != "" {
		if err := writeJSONFile(scanOutputFile, scored); err != nil {
			return err
		}
	}

	if scanProcessedFile != "" {
		for _, job := range jobs {
			processed[job.Link] = true
		}
		if err := saveProcessed(scanProcessedFile, processed); err != nil {
			return err
		}
	}

	fmt.Printf("Scanned %d new jobs\n", len(jobs))
	return nil
}

// loadProcessed reads the processed-links file. A missing file means a
// first run and yields an empty set.
func loadProcessed(path string) (map[string]bool, error) {
	processed := make(map[string]bool)
	if path == "" {
		return processed, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return processed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read processed file: %w", err)
	}

	var links []string
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, fmt.Errorf("failed to parse processed file: %w", err)
	}
	for _, link := range links {
		processed[link] = true
	}
	return processed, nil
}

func saveProcessed(path string, processed map[string]bool) error {
	links := make([]string, 0, len(processed))
	for link := range processed {
		links = append(links, link)
	}
	return writeJSONFile(path, links)
}

// writeJSONFile marshals v with indentation and writes it to path.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
