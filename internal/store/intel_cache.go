package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/match-intel/internal/types"
)

// SaveIntel upserts a Deep Intel record keyed by the short listing identifier.
func (s *Store) SaveIntel(ctx context.Context, jobID string, intel *types.DeepIntel) error {
	if jobID == "" {
		return fmt.Errorf("job id is required")
	}
	content, err := json.Marshal(intel)
	if err != nil {
		return fmt.Errorf("failed to marshal intel: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO deep_intel (job_id, content, captured_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id) DO UPDATE SET content = $2, captured_at = $3`,
		jobID, content, intel.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save intel: %w", err)
	}
	return nil
}

// GetFreshIntel returns the cached record for a listing if it is still
// inside the freshness window, or nil when absent or expired. Expired rows
// are left in place; the next SaveIntel overwrites them.
func (s *Store) GetFreshIntel(ctx context.Context, jobID string, ttl time.Duration) (*types.DeepIntel, error) {
	var (
		content    []byte
		capturedAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT content, captured_at FROM deep_intel WHERE job_id = $1`,
		jobID,
	).Scan(&content, &capturedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load intel: %w", err)
	}

	if time.Since(capturedAt) >= ttl {
		return nil, nil
	}

	var intel types.DeepIntel
	if err := json.Unmarshal(content, &intel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intel: %w", err)
	}
	return &intel, nil
}
