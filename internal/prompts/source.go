package prompts

import (
	"context"
	"log"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// Prompt template names shared between the pipeline and the persistence layer.
const (
	NameResumeAnalysis     = "resume_analysis"
	NameJobAnalysis        = "job_analysis"
	NameMatchingAnalysis   = "matching_analysis"
	NameResumeOptimization = "resume_optimization"
)

// Source resolves a prompt template by name. The second return value is false
// when no template exists under that name, in which case the caller falls back
// to its embedded default.
type Source interface {
	GetTemplate(ctx context.Context, name string) (string, bool)
}

// Store is the persistence surface the PersistedSource reads from. It is
// implemented by the db package.
type Store interface {
	GetPromptByName(ctx context.Context, name string) (*types.PromptSpec, error)
}

// PersistedSource reads templates from a Store. Lookups are read-only and
// uncached so administrator edits take effect on the next pipeline invocation.
type PersistedSource struct {
	store Store
}

// NewPersistedSource creates a PersistedSource backed by store.
func NewPersistedSource(store Store) *PersistedSource {
	return &PersistedSource{store: store}
}

// GetTemplate returns the active stored template for name. Store errors are
// absorbed: a failing persistence layer must not break the pipeline, it only
// disables overrides.
func (s *PersistedSource) GetTemplate(ctx context.Context, name string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	spec, err := s.store.GetPromptByName(ctx, name)
	if err != nil {
		log.Printf("prompt source: lookup %q failed: %v", name, err)
		return "", false
	}
	if spec == nil || !spec.IsActive {
		return "", false
	}
	return spec.Template, true
}

// StaticSource serves the embedded default templates.
type StaticSource struct{}

// defaultLocations maps template names to their embedded file and key.
var defaultLocations = map[string][2]string{
	NameResumeAnalysis:     {"scoring.json", NameResumeAnalysis},
	NameJobAnalysis:        {"scoring.json", NameJobAnalysis},
	NameMatchingAnalysis:   {"scoring.json", NameMatchingAnalysis},
	NameResumeOptimization: {"optimization.json", NameResumeOptimization},
}

// GetTemplate returns the embedded default for name.
func (StaticSource) GetTemplate(_ context.Context, name string) (string, bool) {
	loc, ok := defaultLocations[name]
	if !ok {
		return "", false
	}
	tmpl, err := Get(loc[0], loc[1])
	if err != nil {
		return "", false
	}
	return tmpl, true
}

// FallbackSource tries each source in order and returns the first hit. The
// usual composition is persisted overrides first, embedded defaults last.
type FallbackSource struct {
	sources []Source
}

// NewFallbackSource composes sources in priority order.
func NewFallbackSource(sources ...Source) *FallbackSource {
	return &FallbackSource{sources: sources}
}

// GetTemplate returns the first template any source resolves for name.
func (f *FallbackSource) GetTemplate(ctx context.Context, name string) (string, bool) {
	for _, src := range f.sources {
		if tmpl, ok := src.GetTemplate(ctx, name); ok {
			return tmpl, true
		}
	}
	return "", false
}

// Defaults returns the source composition used when no persistence layer is
// configured: embedded templates only.
func Defaults() Source {
	return StaticSource{}
}

// WithStore returns the standard composition: persisted overrides falling
// back to embedded defaults.
func WithStore(store Store) Source {
	return NewFallbackSource(NewPersistedSource(store), StaticSource{})
}

// DefaultSpecs returns the PromptSpec records used to seed an empty prompts
// collection, mirroring the embedded defaults.
func DefaultSpecs() []types.PromptSpec {
	return []types.PromptSpec{
		{
			Name:        NameResumeAnalysis,
			Description: "Extracts skills and qualifications from a resume",
			Template:    MustGet("scoring.json", NameResumeAnalysis),
			Component:   "ats_scoring",
			Variables:   []string{"ResumeText", "FormatInstructions"},
			IsActive:    true,
			Version:     1,
		},
		{
			Name:        NameJobAnalysis,
			Description: "Extracts requirements from a job description",
			Template:    MustGet("scoring.json", NameJobAnalysis),
			Component:   "ats_scoring",
			Variables:   []string{"JobText", "FormatInstructions"},
			IsActive:    true,
			Version:     1,
		},
		{
			Name:        NameMatchingAnalysis,
			Description: "Analyzes the match between resume skills and job requirements",
			Template:    MustGet("scoring.json", NameMatchingAnalysis),
			Component:   "ats_scoring",
			Variables:   []string{"ResumeSkills", "JobRequirements"},
			IsActive:    true,
			Version:     1,
		},
		{
			Name:        NameResumeOptimization,
			Description: "Generates an ATS-optimized resume for a job description",
			Template:    MustGet("optimization.json", NameResumeOptimization),
			Component:   "resume_optimization",
			Variables:   []string{"JobDescription", "Resume", "RecommendedSkillsSection"},
			IsActive:    true,
			Version:     1,
		},
	}
}
