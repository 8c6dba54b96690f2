package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Resume represents a stored resume with the job description it targets.
type Resume struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	OriginalText   string    `json:"original_text"`
	JobDescription string    `json:"job_description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateResume stores a new resume and returns its ID.
func (db *DB) CreateResume(ctx context.Context, title, originalText, jobDescription string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (id, title, original_text, job_description)
		 VALUES ($1, $2, $3, $4)`,
		id, title, originalText, jobDescription,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume by ID. Returns nil when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, original_text, job_description, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Title, &r.OriginalText, &r.JobDescription, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// ListResumes retrieves recent resumes, newest first.
func (db *DB) ListResumes(ctx context.Context, limit int) ([]Resume, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, original_text, job_description, created_at, updated_at
		 FROM resumes ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.Title, &r.OriginalText, &r.JobDescription, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// UpdateResume replaces the stored text and job description. Returns false
// when the resume does not exist.
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, title, originalText, jobDescription string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes
		 SET title = $2, original_text = $3, job_description = $4, updated_at = NOW()
		 WHERE id = $1`,
		id, title, originalText, jobDescription,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteResume removes a resume and its optimizations. Returns false when the
// resume does not exist.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
