package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-optimizer/internal/prompts"
	"github.com/jonathan/ats-optimizer/internal/types"
)

const promptColumns = `id, name, description, template, component, variables,
	is_active, version, created_at, updated_at`

// GetPromptByName retrieves a prompt template by its unique name. Returns nil
// when not found. Satisfies prompts.Store.
func (db *DB) GetPromptByName(ctx context.Context, name string) (*types.PromptSpec, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+promptColumns+` FROM prompts WHERE name = $1`, name)
	spec, err := scanPrompt(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return spec, nil
}

// GetPrompt retrieves a prompt template by ID. Returns nil when not found.
func (db *DB) GetPrompt(ctx context.Context, id uuid.UUID) (*types.PromptSpec, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+promptColumns+` FROM prompts WHERE id = $1`, id)
	spec, err := scanPrompt(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return spec, nil
}

// ListPrompts retrieves all prompt templates ordered by name.
func (db *DB) ListPrompts(ctx context.Context) ([]types.PromptSpec, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+promptColumns+` FROM prompts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var specs []types.PromptSpec
	for rows.Next() {
		spec, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		specs = append(specs, *spec)
	}
	return specs, nil
}

// CreatePrompt stores a new prompt template at version 1.
func (db *DB) CreatePrompt(ctx context.Context, spec *types.PromptSpec) (uuid.UUID, error) {
	id := uuid.New()
	variablesBytes, err := json.Marshal(spec.Variables)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal variables: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO prompts (id, name, description, template, component, variables, is_active, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 1)`,
		id, spec.Name, spec.Description, spec.Template, spec.Component, variablesBytes, spec.IsActive,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create prompt: %w", err)
	}
	return id, nil
}

// UpdatePrompt applies a partial update. The version is bumped only when the
// template text actually changes. Returns the updated record, or nil when the
// prompt does not exist.
func (db *DB) UpdatePrompt(ctx context.Context, id uuid.UUID, update *types.PromptUpdate) (*types.PromptSpec, error) {
	current, err := db.GetPrompt(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if update.Description != nil {
		current.Description = *update.Description
	}
	if update.Variables != nil {
		current.Variables = *update.Variables
	}
	if update.IsActive != nil {
		current.IsActive = *update.IsActive
	}
	if update.Template != nil && *update.Template != current.Template {
		current.Template = *update.Template
		current.Version++
	}

	variablesBytes, err := json.Marshal(current.Variables)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal variables: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE prompts
		 SET description = $2, template = $3, variables = $4, is_active = $5,
		     version = $6, updated_at = NOW()
		 WHERE id = $1`,
		id, current.Description, current.Template, variablesBytes, current.IsActive, current.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update prompt: %w", err)
	}
	return db.GetPrompt(ctx, id)
}

// DeletePrompt removes a stored prompt template. The embedded default takes
// over once the override is gone. Returns false when the prompt does not exist.
func (db *DB) DeletePrompt(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM prompts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete prompt: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SeedDefaultPrompts inserts the embedded default templates for any prompt
// name not yet present. Existing rows are left untouched so operator edits
// survive restarts.
func (db *DB) SeedDefaultPrompts(ctx context.Context) error {
	for _, spec := range prompts.DefaultSpecs() {
		existing, err := db.GetPromptByName(ctx, spec.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := db.CreatePrompt(ctx, &spec); err != nil {
			return err
		}
	}
	return nil
}

func scanPrompt(row pgx.Row) (*types.PromptSpec, error) {
	var spec types.PromptSpec
	var variablesBytes []byte

	err := row.Scan(&spec.ID, &spec.Name, &spec.Description, &spec.Template,
		&spec.Component, &variablesBytes, &spec.IsActive, &spec.Version,
		&spec.CreatedAt, &spec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(variablesBytes) > 0 {
		_ = json.Unmarshal(variablesBytes, &spec.Variables)
	}
	return &spec, nil
}
