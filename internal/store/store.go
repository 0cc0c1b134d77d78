// Package store provides PostgreSQL persistence for the Deep Intel cache
// and the saved-jobs tracker. The extraction and scoring core never touches
// it; only the CLI commands and the HTTP API do.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables the store needs if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS deep_intel (
			job_id      TEXT PRIMARY KEY,
			content     JSONB NOT NULL,
			captured_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS saved_jobs (
			id         UUID PRIMARY KEY,
			link       TEXT NOT NULL UNIQUE,
			content    JSONB NOT NULL,
			score      INT NOT NULL,
			auto_saved BOOLEAN NOT NULL DEFAULT FALSE,
			saved_at   TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
