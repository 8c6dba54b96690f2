package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Optimization status constants.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Optimization represents one optimization run against a stored resume.
// Completed runs carry the structured result; failed runs keep the error
// message and never overwrite an earlier successful result.
type Optimization struct {
	ID             uuid.UUID  `json:"id"`
	ResumeID       uuid.UUID  `json:"resume_id"`
	Status         string     `json:"status"`
	InitialScore   *int       `json:"initial_score,omitempty"`
	FinalScore     *int       `json:"final_score,omitempty"`
	MatchingSkills []string   `json:"matching_skills,omitempty"`
	MissingSkills  []string   `json:"missing_skills,omitempty"`
	Recommendation string     `json:"recommendation,omitempty"`
	OptimizedJSON  []byte     `json:"optimized_resume,omitempty"`
	LatexContent   string     `json:"latex_content,omitempty"`
	Degraded       bool       `json:"degraded"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// CreateOptimization inserts a new running optimization record and returns
// its ID. Every run gets a fresh row so history is preserved.
func (db *DB) CreateOptimization(ctx context.Context, resumeID uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO optimizations (id, resume_id, status) VALUES ($1, $2, $3)`,
		id, resumeID, StatusRunning,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create optimization: %w", err)
	}
	return id, nil
}

// OptimizationResult carries the fields stored when a run completes.
type OptimizationResult struct {
	InitialScore   *int
	FinalScore     *int
	MatchingSkills []string
	MissingSkills  []string
	Recommendation string
	OptimizedJSON  any
	LatexContent   string
	Degraded       bool
}

// CompleteOptimization stores the result and marks the run completed.
func (db *DB) CompleteOptimization(ctx context.Context, id uuid.UUID, result *OptimizationResult) error {
	optimizedBytes, err := json.Marshal(result.OptimizedJSON)
	if err != nil {
		return fmt.Errorf("failed to marshal optimized resume: %w", err)
	}
	matchingBytes, err := json.Marshal(result.MatchingSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal matching skills: %w", err)
	}
	missingBytes, err := json.Marshal(result.MissingSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal missing skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE optimizations
		 SET status = $2, initial_score = $3, final_score = $4,
		     matching_skills = $5, missing_skills = $6, recommendation = $7,
		     optimized_resume = $8, latex_content = $9, degraded = $10,
		     completed_at = NOW()
		 WHERE id = $1`,
		id, StatusCompleted, result.InitialScore, result.FinalScore,
		matchingBytes, missingBytes, result.Recommendation,
		optimizedBytes, result.LatexContent, result.Degraded,
	)
	if err != nil {
		return fmt.Errorf("failed to complete optimization: %w", err)
	}
	return nil
}

// FailOptimization marks the run failed with an error message. The result
// columns stay untouched.
func (db *DB) FailOptimization(ctx context.Context, id uuid.UUID, message string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE optimizations
		 SET status = $2, error_message = $3, completed_at = NOW()
		 WHERE id = $1`,
		id, StatusFailed, message,
	)
	if err != nil {
		return fmt.Errorf("failed to mark optimization failed: %w", err)
	}
	return nil
}

const optimizationColumns = `id, resume_id, status, initial_score, final_score,
	matching_skills, missing_skills, recommendation, optimized_resume,
	latex_content, degraded, error_message, created_at, completed_at`

// GetOptimization retrieves an optimization by ID. Returns nil when not found.
func (db *DB) GetOptimization(ctx context.Context, id uuid.UUID) (*Optimization, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+optimizationColumns+` FROM optimizations WHERE id = $1`, id)
	opt, err := scanOptimization(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get optimization: %w", err)
	}
	return opt, nil
}

// GetLatestCompleted retrieves the newest completed optimization for a
// resume. Returns nil when the resume has none.
func (db *DB) GetLatestCompleted(ctx context.Context, resumeID uuid.UUID) (*Optimization, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+optimizationColumns+`
		 FROM optimizations
		 WHERE resume_id = $1 AND status = $2
		 ORDER BY created_at DESC LIMIT 1`,
		resumeID, StatusCompleted)
	opt, err := scanOptimization(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest optimization: %w", err)
	}
	return opt, nil
}

// ListOptimizations retrieves the optimization history for a resume, newest first.
func (db *DB) ListOptimizations(ctx context.Context, resumeID uuid.UUID, limit int) ([]Optimization, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+optimizationColumns+`
		 FROM optimizations WHERE resume_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		resumeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list optimizations: %w", err)
	}
	defer rows.Close()

	var opts []Optimization
	for rows.Next() {
		opt, err := scanOptimization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan optimization: %w", err)
		}
		opts = append(opts, *opt)
	}
	return opts, nil
}

func scanOptimization(row pgx.Row) (*Optimization, error) {
	var opt Optimization
	var matchingBytes, missingBytes []byte
	var latex, errMsg *string

	err := row.Scan(&opt.ID, &opt.ResumeID, &opt.Status, &opt.InitialScore, &opt.FinalScore,
		&matchingBytes, &missingBytes, &opt.Recommendation, &opt.OptimizedJSON,
		&latex, &opt.Degraded, &errMsg, &opt.CreatedAt, &opt.CompletedAt)
	if err != nil {
		return nil, err
	}

	if latex != nil {
		opt.LatexContent = *latex
	}
	if errMsg != nil {
		opt.ErrorMessage = *errMsg
	}
	if len(matchingBytes) > 0 {
		_ = json.Unmarshal(matchingBytes, &opt.MatchingSkills)
	}
	if len(missingBytes) > 0 {
		_ = json.Unmarshal(missingBytes, &opt.MissingSkills)
	}
	return &opt, nil
}
