package types

import (
	"time"

	"github.com/google/uuid"
)

// PromptSpec is a stored prompt template keyed by name within a component.
// Version increments whenever the template text changes.
type PromptSpec struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Template    string    `json:"template"`
	Component   string    `json:"component"`
	Variables   []string  `json:"variables"`
	IsActive    bool      `json:"is_active"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PromptUpdate carries a partial update to a prompt template. Nil fields are
// left unchanged.
type PromptUpdate struct {
	Description *string   `json:"description,omitempty"`
	Template    *string   `json:"template,omitempty"`
	Variables   *[]string `json:"variables,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}
