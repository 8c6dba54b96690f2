package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// PromptRequest represents the request body for creating a prompt template
type PromptRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Template    string   `json:"template" validate:"required"`
	Component   string   `json:"component,omitempty"`
	Variables   []string `json:"variables,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// handleListPrompts returns all stored prompt templates
func (s *Server) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	specs, err := s.db.ListPrompts(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"prompts": specs,
		"count":   len(specs),
	})
}

// handleGetPrompt returns a prompt template by ID
func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Prompt")
	if !ok {
		return
	}

	spec, err := s.db.GetPrompt(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if spec == nil {
		s.errorResponse(w, http.StatusNotFound, "Prompt not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, spec)
}

// handleCreatePrompt stores a new prompt template
func (s *Server) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	spec := &types.PromptSpec{
		Name:        req.Name,
		Description: req.Description,
		Template:    req.Template,
		Component:   req.Component,
		Variables:   req.Variables,
		IsActive:    true,
	}
	if req.IsActive != nil {
		spec.IsActive = *req.IsActive
	}

	id, err := s.db.CreatePrompt(r.Context(), spec)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleUpdatePrompt applies a partial update to a prompt template.
// The version is bumped only when the template text actually changes.
func (s *Server) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Prompt")
	if !ok {
		return
	}

	var update types.PromptUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	spec, err := s.db.UpdatePrompt(r.Context(), id, &update)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if spec == nil {
		s.errorResponse(w, http.StatusNotFound, "Prompt not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, spec)
}

// handleDeletePrompt removes a prompt template
func (s *Server) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Prompt")
	if !ok {
		return
	}

	deleted, err := s.db.DeletePrompt(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Prompt not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
