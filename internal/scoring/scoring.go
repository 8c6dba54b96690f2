// Package scoring computes the ATS compatibility score between a resume and a
// job description from LLM-extracted skill and requirement sets.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-optimizer/internal/extraction"
	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/prompts"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// NeutralScore is returned when the job description yields no extractable
// requirements; there is nothing to divide by.
const NeutralScore = 50

// Scorer computes match scores. Safe for concurrent use across requests;
// each call is an independent sequence of LLM round trips.
type Scorer struct {
	client    llm.Client
	source    prompts.Source
	extractor *extraction.Extractor
	timeout   time.Duration
}

// NewScorer creates a Scorer. A nil source means embedded default prompts.
func NewScorer(client llm.Client, source prompts.Source) *Scorer {
	if source == nil {
		source = prompts.Defaults()
	}
	return &Scorer{
		client:    client,
		source:    source,
		extractor: extraction.New(client, source),
		timeout:   llm.DefaultExtractionTimeout,
	}
}

// ComputeMatchScore extracts both skill sets, computes the overlap score, and
// generates a recommendation. The two extraction calls are independent and run
// concurrently; scoring itself is deterministic.
func (s *Scorer) ComputeMatchScore(ctx context.Context, resumeText, jobDescription string, temperature float32) (*types.MatchResult, error) {
	var resumeProfile, jobProfile *types.ExtractedProfile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumeProfile, err = s.extractor.ExtractResumeSkills(gctx, resumeText, temperature)
		return err
	})
	g.Go(func() error {
		var err error
		jobProfile, err = s.extractor.ExtractJobRequirements(gctx, jobDescription, temperature)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matching, missing := MatchSkills(resumeProfile.Items, jobProfile.Items)
	score := Score(len(matching), len(jobProfile.Items))

	recommendation := s.recommend(ctx, resumeProfile.Items, jobProfile.Items, missing, temperature)

	return &types.MatchResult{
		FinalScore:     score,
		MatchingSkills: matching,
		MissingSkills:  missing,
		Recommendation: recommendation,
	}, nil
}

// MatchSkills partitions the requirement list into matched and missing sets.
// A requirement matches when its normalized form appears in the normalized
// resume-skill set, or when either normalized form is a substring of the
// other. Substring matching deliberately tolerates phrasing differences
// ("Python programming" satisfies "Python") at the cost of occasional false
// positives ("Java" satisfies "JavaScript").
func MatchSkills(resumeSkills, requirements []string) (matching, missing []string) {
	folded := make([]string, len(resumeSkills))
	for i, skill := range resumeSkills {
		folded[i] = types.FoldSkill(skill)
	}

	matching = []string{}
	missing = []string{}
	for _, req := range requirements {
		foldedReq := types.FoldSkill(req)
		if foldedReq == "" {
			continue
		}
		matched := false
		for _, skill := range folded {
			if skill == "" {
				continue
			}
			if strings.Contains(skill, foldedReq) || strings.Contains(foldedReq, skill) {
				matched = true
				break
			}
		}
		if matched {
			matching = append(matching, req)
		} else {
			missing = append(missing, req)
		}
	}
	return matching, missing
}

// Score maps matched/total counts to an integer 0-100. Zero requirements
// default to the neutral score rather than dividing by zero.
func Score(matched, total int) int {
	if total == 0 {
		return NeutralScore
	}
	return int(math.Round(100 * float64(matched) / float64(total)))
}

// recommend asks the LLM for a short natural-language gap summary. On any
// failure it falls back to a templated string so scoring never fails over the
// recommendation alone.
func (s *Scorer) recommend(ctx context.Context, resumeSkills, requirements, missing []string, temperature float32) string {
	template, ok := s.source.GetTemplate(ctx, prompts.NameMatchingAnalysis)
	if !ok {
		return fallbackRecommendation(missing)
	}

	prompt := prompts.Format(template, map[string]string{
		"ResumeSkills":    "- " + strings.Join(resumeSkills, "\n- "),
		"JobRequirements": "- " + strings.Join(requirements, "\n- "),
	})

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	recommendation, err := s.client.Complete(callCtx, prompt, temperature)
	if err != nil || strings.TrimSpace(recommendation) == "" {
		return fallbackRecommendation(missing)
	}
	return strings.TrimSpace(recommendation)
}

func fallbackRecommendation(missing []string) string {
	if len(missing) == 0 {
		return "Your resume covers the extracted job requirements well. Review the posting for context-specific phrasing before applying."
	}
	return fmt.Sprintf(
		"Your resume is missing %d skill(s) from the job requirements: %s. Add truthful evidence of these skills where you have it.",
		len(missing), strings.Join(missing, ", "),
	)
}
