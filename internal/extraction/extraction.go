// Package extraction invokes the LLM with fixed-schema prompts to pull skill
// and requirement lists out of free text.
package extraction

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/prompts"
	"github.com/jonathan/ats-optimizer/internal/recovery"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// FormatInstructions is the schema description injected into every extraction
// prompt in place of the {{.FormatInstructions}} placeholder.
const FormatInstructions = `Return ONLY valid JSON matching this exact structure:
{
  "items": ["first skill", "second skill"]
}

- "items" is a flat array of strings, one skill or requirement per entry.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.`

// Extractor runs LLM-backed structured extraction of skills and requirements.
type Extractor struct {
	client  llm.Client
	source  prompts.Source
	timeout time.Duration
}

// New creates an Extractor. A nil source means embedded default prompts only.
func New(client llm.Client, source prompts.Source) *Extractor {
	if source == nil {
		source = prompts.Defaults()
	}
	return &Extractor{
		client:  client,
		source:  source,
		timeout: llm.DefaultExtractionTimeout,
	}
}

// WithTimeout overrides the per-call timeout.
func (e *Extractor) WithTimeout(d time.Duration) *Extractor {
	e.timeout = d
	return e
}

// ExtractResumeSkills extracts the skill/qualification set from resume text.
func (e *Extractor) ExtractResumeSkills(ctx context.Context, resumeText string, temperature float32) (*types.ExtractedProfile, error) {
	return e.extract(ctx, StageResumeSkills, prompts.NameResumeAnalysis, map[string]string{
		"ResumeText":         resumeText,
		"FormatInstructions": FormatInstructions,
	}, temperature)
}

// ExtractJobRequirements extracts the requirement set from a job description.
func (e *Extractor) ExtractJobRequirements(ctx context.Context, jobText string, temperature float32) (*types.ExtractedProfile, error) {
	return e.extract(ctx, StageJobRequirements, prompts.NameJobAnalysis, map[string]string{
		"JobText":            jobText,
		"FormatInstructions": FormatInstructions,
	}, temperature)
}

func (e *Extractor) extract(ctx context.Context, stage, promptName string, vars map[string]string, temperature float32) (*types.ExtractedProfile, error) {
	template, ok := e.source.GetTemplate(ctx, promptName)
	if !ok {
		return nil, &ExtractionError{Stage: stage, Message: "no prompt template available for " + promptName}
	}
	prompt := prompts.Format(template, vars)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.client.CompleteJSON(callCtx, prompt, temperature)
	if err != nil {
		return nil, &ExtractionError{Stage: stage, Message: "LLM call failed", Cause: err}
	}

	items, ok := ParseItems(raw)
	if !ok {
		return nil, &ExtractionError{Stage: stage, Message: "response contained no item list"}
	}

	return &types.ExtractedProfile{Items: Dedupe(items)}, nil
}

// itemListKeys are the object keys accepted as the item list, in preference
// order. The prompt asks for "items" but models sometimes substitute the
// domain word.
var itemListKeys = []string{"items", "skills", "requirements", "qualifications"}

// ParseItems tolerantly parses an extraction response into a string list.
// It accepts a JSON object under any known key, a bare JSON array, or any
// object whose first array value holds strings, running the raw text through
// the recovery chain when direct parsing fails.
func ParseItems(raw string) ([]string, bool) {
	cleaned := llm.CleanJSONBlock(raw)

	// Bare array responses never survive the recovery chain (object root
	// required), so check them first.
	var arr []any
	if err := json.Unmarshal([]byte(cleaned), &arr); err == nil {
		return stringItems(arr)
	}

	obj, ok := recovery.Recover(cleaned)
	if !ok {
		return nil, false
	}

	for _, key := range itemListKeys {
		if v, exists := obj[key]; exists {
			if items, ok := anyItems(v); ok {
				return items, true
			}
		}
	}

	// Last resort: any array-valued field with string content.
	for _, v := range obj {
		if items, ok := anyItems(v); ok {
			return items, true
		}
	}

	return nil, false
}

func anyItems(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	return stringItems(arr)
}

// stringItems accepts any all-string array, including an empty one. An empty
// list is a legitimate extraction result (a posting with no requirements),
// not a parse failure.
func stringItems(arr []any) ([]string, bool) {
	items := make([]string, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		if strings.TrimSpace(s) != "" {
			items = append(items, s)
		}
	}
	return items, true
}

// Dedupe removes duplicates by normalized (lower-cased, trimmed) comparison,
// preserving extraction order and original casing.
func Dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		folded := types.FoldSkill(item)
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, strings.TrimSpace(item))
	}
	return out
}
