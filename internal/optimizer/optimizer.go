// Package optimizer generates ATS-optimized resumes. It combines a
// pre-optimization match score, a recommended-skills prompt section, and a
// multi-level recovery chain so that a resume is always produced, degraded at
// worst, as long as the LLM transport itself succeeds.
package optimizer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/prompts"
	"github.com/jonathan/ats-optimizer/internal/recovery"
	"github.com/jonathan/ats-optimizer/internal/scoring"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// Optimizer orchestrates resume generation against an LLM client.
type Optimizer struct {
	client  llm.Client
	source  prompts.Source
	scorer  *scoring.Scorer
	timeout time.Duration
}

// New creates an Optimizer. A nil source falls back to the embedded default
// templates.
func New(client llm.Client, source prompts.Source) *Optimizer {
	if source == nil {
		source = prompts.Defaults()
	}
	return &Optimizer{
		client:  client,
		source:  source,
		scorer:  scoring.NewScorer(client, source),
		timeout: llm.DefaultGenerationTimeout,
	}
}

// WithTimeout overrides the per-call generation timeout.
func (o *Optimizer) WithTimeout(timeout time.Duration) *Optimizer {
	o.timeout = timeout
	return o
}

// GenerateOptimizedResume rewrites resumeText against jobDescription and
// returns the structured result. Scoring runs first on a best-effort basis:
// its missing skills feed the recommended-skills prompt section and its
// result is merged into the output as ats_metrics. A scoring failure is
// logged and generation proceeds without recommendations.
//
// The returned error is non-nil only for transport-level failures
// (GenerationError). Unparseable LLM output degrades to a synthesized
// structure carrying the raw text instead of failing.
func (o *Optimizer) GenerateOptimizedResume(ctx context.Context, resumeText, jobDescription string, temperature float32) (*types.OptimizedResume, error) {
	match, err := o.scorer.ComputeMatchScore(ctx, resumeText, jobDescription, temperature)
	if err != nil {
		log.Printf("optimizer: pre-optimization scoring failed, continuing without recommendations: %v", err)
		match = nil
	}

	var missing []string
	if match != nil {
		missing = match.MissingSkills
	}

	prompt := o.buildPrompt(ctx, resumeText, jobDescription, BuildSkillsSection(missing))

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	raw, err := o.client.CompleteJSON(callCtx, prompt, temperature)
	if err != nil {
		return nil, &GenerationError{Message: "resume generation request failed", Cause: err}
	}

	resume, err := decodeResponse(raw, match)
	if err != nil {
		return nil, err
	}

	EnsureSummary(resume)
	attachMetrics(resume, match)
	return resume, nil
}

// decodeResponse turns the raw LLM output into an OptimizedResume, walking
// the recovery chain and synthesizing a degraded structure as a last resort.
func decodeResponse(raw string, match *types.MatchResult) (*types.OptimizedResume, error) {
	cleaned := llm.CleanJSONBlock(raw)

	obj, ok := recovery.Recover(cleaned)
	if !ok {
		log.Printf("optimizer: response is not recoverable JSON, synthesizing structure from raw text")
		return SynthesizeFromText(raw, match), nil
	}

	// Re-encode the recovered map so unknown delimiter artifacts are dropped
	// and the typed decode sees canonical JSON.
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, &OptimizationError{Message: "failed to re-encode recovered response", Cause: err}
	}

	var resume types.OptimizedResume
	if err := json.Unmarshal(data, &resume); err != nil {
		log.Printf("optimizer: recovered JSON does not match the resume shape, synthesizing structure: %v", err)
		return SynthesizeFromText(raw, match), nil
	}

	return &resume, nil
}

// attachMetrics merges the pre-optimization score into the result. A resume
// that already carries metrics (for example from a stored override template
// instructing the model to emit them) is left untouched.
func attachMetrics(resume *types.OptimizedResume, match *types.MatchResult) {
	if match == nil || resume.ATSMetrics != nil {
		return
	}
	resume.ATSMetrics = &types.ATSMetrics{
		InitialScore:   match.FinalScore,
		MatchingSkills: match.MatchingSkills,
		MissingSkills:  match.MissingSkills,
		Recommendation: match.Recommendation,
	}
}
