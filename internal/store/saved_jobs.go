package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/match-intel/internal/types"
)

// SaveJob adds a listing to the tracker. Entries are deduplicated on the
// canonical link; saving an already-tracked listing is a no-op and reports
// false.
func (s *Store) SaveJob(ctx context.Context, job *types.JobRecord, score int, autoSaved bool) (bool, error) {
	if job == nil || job.Link == "" {
		return false, fmt.Errorf("job with a link is required")
	}

	content, err := json.Marshal(job)
	if err != nil {
		return false, fmt.Errorf("failed to marshal job: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO saved_jobs (id, link, content, score, auto_saved, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (link) DO NOTHING`,
		uuid.New(), job.Link, content, score, autoSaved, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to save job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListSavedJobs returns tracker entries, most recently saved first.
func (s *Store) ListSavedJobs(ctx context.Context) ([]types.SavedJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT content, score, auto_saved, saved_at FROM saved_jobs ORDER BY saved_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	defer rows.Close()

	var saved []types.SavedJob
	for rows.Next() {
		var (
			content []byte
			entry   types.SavedJob
		)
		if err := rows.Scan(&content, &entry.Score, &entry.AutoSaved, &entry.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved job: %w", err)
		}
		if err := json.Unmarshal(content, &entry.Job); err != nil {
			return nil, fmt.Errorf("failed to unmarshal saved job: %w", err)
		}
		saved = append(saved, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved jobs: %w", err)
	}
	return saved, nil
}
