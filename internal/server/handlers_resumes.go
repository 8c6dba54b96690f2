package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// ResumeRequest represents the request body for creating or updating a resume
type ResumeRequest struct {
	Title          string `json:"title" validate:"required"`
	OriginalText   string `json:"original_text" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
}

// handleCreateResume stores a new resume
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	id, err := s.db.CreateResume(r.Context(), req.Title, req.OriginalText, req.JobDescription)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleListResumes returns stored resumes, most recent first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	resumes, err := s.db.ListResumes(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// handleGetResume returns a stored resume by ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Resume")
	if !ok {
		return
	}

	resume, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume replaces a stored resume's content
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Resume")
	if !ok {
		return
	}

	var req ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	updated, err := s.db.UpdateResume(r.Context(), id, req.Title, req.OriginalText, req.JobDescription)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !updated {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleDeleteResume deletes a resume and its optimization history
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Resume")
	if !ok {
		return
	}

	deleted, err := s.db.DeleteResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleListOptimizations returns the optimization history for a resume
func (s *Server) handleListOptimizations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Resume")
	if !ok {
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	optimizations, err := s.db.ListOptimizations(r.Context(), id, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume_id":     id.String(),
		"optimizations": optimizations,
		"count":         len(optimizations),
	})
}

// handleLatestOptimization returns the most recent completed optimization for a resume
func (s *Server) handleLatestOptimization(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Resume")
	if !ok {
		return
	}

	opt, err := s.db.GetLatestCompleted(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if opt == nil {
		s.errorResponse(w, http.StatusNotFound, "No completed optimization for this resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, opt)
}

// handleGetOptimization returns an optimization run by ID
func (s *Server) handleGetOptimization(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Optimization")
	if !ok {
		return
	}

	opt, err := s.db.GetOptimization(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if opt == nil {
		s.errorResponse(w, http.StatusNotFound, "Optimization not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, opt)
}

// handleOptimizationTex returns the rendered LaTeX for an optimization as plain text
func (s *Server) handleOptimizationTex(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Optimization")
	if !ok {
		return
	}

	opt, err := s.db.GetOptimization(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if opt == nil {
		s.errorResponse(w, http.StatusNotFound, "Optimization not found")
		return
	}
	if opt.LatexContent == "" {
		s.errorResponse(w, http.StatusNotFound, "resume.tex not available for this optimization")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=resume.tex")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(opt.LatexContent))
}

// pathID parses the {id} path segment as a UUID. On failure it writes the
// error response and returns false.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, what+" ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+what+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
