// Package db provides PostgreSQL storage for resumes, optimization results,
// and prompt templates.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the schema if it does not exist. Statements are idempotent
// so it is safe to run on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			original_text TEXT NOT NULL,
			job_description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS optimizations (
			id UUID PRIMARY KEY,
			resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			initial_score INT,
			final_score INT,
			matching_skills JSONB,
			missing_skills JSONB,
			recommendation TEXT NOT NULL DEFAULT '',
			optimized_resume JSONB,
			latex_content TEXT,
			degraded BOOLEAN NOT NULL DEFAULT FALSE,
			error_message TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_optimizations_resume_id
			ON optimizations (resume_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS prompts (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			template TEXT NOT NULL,
			component TEXT NOT NULL DEFAULT '',
			variables JSONB,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			version INT NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
