package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/pipeline"
	"github.com/jonathan/ats-optimizer/internal/prompts"
	"github.com/jonathan/ats-optimizer/internal/scoring"
)

// ScoreRequest represents the request body for /score
type ScoreRequest struct {
	ResumeText     string  `json:"resume_text" validate:"required"`
	JobDescription string  `json:"job_description" validate:"required"`
	Temperature    float32 `json:"temperature" validate:"gte=0,lte=1"`
}

// OptimizeRequest represents the request body for /optimize.
// The resume comes from resume_id (a stored resume) or from resume_text;
// the job description comes from the stored resume, job_description, or job_url.
type OptimizeRequest struct {
	ResumeID       string  `json:"resume_id,omitempty" validate:"omitempty,uuid"`
	ResumeText     string  `json:"resume_text,omitempty"`
	JobDescription string  `json:"job_description,omitempty"`
	JobURL         string  `json:"job_url,omitempty" validate:"omitempty,url"`
	Title          string  `json:"title,omitempty"`
	Model          string  `json:"model,omitempty"`
	Temperature    float32 `json:"temperature" validate:"gte=0,lte=1"`
	UseBrowser     bool    `json:"use_browser,omitempty"`
}

// OptimizeResponse represents the response for /optimize
type OptimizeResponse struct {
	ResumeID       string   `json:"resume_id,omitempty"`
	OptimizationID string   `json:"optimization_id,omitempty"`
	InitialScore   *int     `json:"initial_score,omitempty"`
	FinalScore     *int     `json:"final_score,omitempty"`
	Degraded       bool     `json:"degraded"`
	Issues         []string `json:"structure_issues,omitempty"`
	Resume         any      `json:"resume"`
	Latex          string   `json:"latex"`
}

// handleScore computes an ATS match score for a resume against a job description
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	client, err := llm.NewClient(r.Context(), llm.DefaultConfig(), s.apiKey)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create LLM client: "+err.Error())
		return
	}
	defer func() { _ = client.Close() }()

	scorer := scoring.NewScorer(client, prompts.WithStore(s.db))
	match, err := scorer.ComputeMatchScore(r.Context(), req.ResumeText, req.JobDescription, req.Temperature)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Scoring failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, match)
}

// handleOptimize runs the full optimization pipeline synchronously
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.optimizeOptions(w, r)
	if !ok {
		return
	}

	result, err := pipeline.Run(r.Context(), *opts)
	if err != nil {
		log.Printf("Optimization run failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Optimization failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, optimizeResponse(result))
}

// handleOptimizeStream runs the pipeline and streams progress via SSE
func (s *Server) handleOptimizeStream(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.optimizeOptions(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	log.Printf("Starting streaming optimization run...")

	result, err := pipeline.Run(r.Context(), *opts)
	if err != nil {
		log.Printf("Optimization run failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(result.OptimizationID.String(), "completed")
	log.Printf("Streaming optimization run completed")
}

// optimizeOptions decodes and validates an OptimizeRequest, resolving a stored
// resume when resume_id is set. On failure it writes the error response and
// returns false.
func (s *Server) optimizeOptions(w http.ResponseWriter, r *http.Request) (*pipeline.RunOptions, bool) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationError(err))
		return nil, false
	}
	if req.ResumeID == "" && req.ResumeText == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either resume_id or resume_text is required")
		return nil, false
	}
	if req.JobDescription != "" && req.JobURL != "" {
		s.errorResponse(w, http.StatusBadRequest, "job_description and job_url are mutually exclusive")
		return nil, false
	}

	opts := &pipeline.RunOptions{
		ResumeText:  req.ResumeText,
		JobText:     req.JobDescription,
		JobURL:      req.JobURL,
		Title:       req.Title,
		Model:       req.Model,
		Temperature: req.Temperature,
		UseBrowser:  req.UseBrowser,
		APIKey:      s.apiKey,
		Database:    s.db,
	}
	if opts.Model == "" {
		opts.Model = s.model
	}

	// A stored resume supplies its text, and its job description unless the
	// request overrides it.
	if req.ResumeID != "" {
		id, err := uuid.Parse(req.ResumeID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume_id format")
			return nil, false
		}
		stored, err := s.db.GetResume(r.Context(), id)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return nil, false
		}
		if stored == nil {
			s.errorResponse(w, http.StatusNotFound, "Resume not found")
			return nil, false
		}
		opts.ResumeID = stored.ID
		if opts.ResumeText == "" {
			opts.ResumeText = stored.OriginalText
		}
		if opts.JobText == "" && opts.JobURL == "" {
			opts.JobText = stored.JobDescription
		}
		if opts.Title == "" {
			opts.Title = stored.Title
		}
	}

	if opts.JobText == "" && opts.JobURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either job_description or job_url is required")
		return nil, false
	}

	return opts, true
}

// optimizeResponse converts a pipeline result to the API response shape
func optimizeResponse(result *pipeline.Result) OptimizeResponse {
	resp := OptimizeResponse{
		Degraded: result.Resume.IsDegraded(),
		Resume:   result.Resume,
		Latex:    result.Latex,
	}
	if result.ResumeID != uuid.Nil {
		resp.ResumeID = result.ResumeID.String()
	}
	if result.OptimizationID != uuid.Nil {
		resp.OptimizationID = result.OptimizationID.String()
	}
	if result.InitialMatch != nil {
		score := result.InitialMatch.FinalScore
		resp.InitialScore = &score
	}
	if result.FinalMatch != nil {
		score := result.FinalMatch.FinalScore
		resp.FinalScore = &score
	}
	for _, issue := range result.Issues {
		resp.Issues = append(resp.Issues, issue.String())
	}
	return resp
}
