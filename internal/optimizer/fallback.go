package optimizer

import (
	"unicode/utf8"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// synthesizedProfileLimit bounds how much of the raw response is copied into
// the profile description of a synthesized resume.
const synthesizedProfileLimit = 500

const synthesizedNote = "Note: The resume was generated but could not be structured properly. " +
	"Please check the raw text or try again. "

// SynthesizeFromText builds a minimal valid resume structure from a free-text
// LLM response. The full raw text is preserved in raw_text_response so
// callers can surface it; the profile description carries a warning note plus
// a bounded preview. Matching skills from the pre-optimization score, when
// available, seed the hard-skills list so the rendered output is not empty.
func SynthesizeFromText(text string, match *types.MatchResult) *types.OptimizedResume {
	preview := truncateUTF8(text, synthesizedProfileLimit)

	var hardSkills []string
	if match != nil {
		hardSkills = append(hardSkills, match.MatchingSkills...)
	}

	return &types.OptimizedResume{
		UserInformation: types.UserInformation{
			Name:               "Resume Owner",
			MainJobTitle:       "Professional",
			ProfileDescription: synthesizedNote + preview,
			Experiences:        []types.Experience{},
			Education:          []types.Education{},
			Skills: types.Skills{
				HardSkills: hardSkills,
				SoftSkills: []string{},
			},
			Hobbies: []string{},
		},
		Projects:                  []types.Project{},
		Certificates:              []types.Certificate{},
		ExtraCurricularActivities: []types.Activity{},
		OptimizationSummary:       DefaultSummary(),
		RawTextResponse:           text,
	}
}

// truncateUTF8 cuts s to at most limit bytes without splitting a multi-byte
// character, backing up to the nearest rune boundary.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// DefaultSummary is the placeholder optimization summary used when the model
// did not emit one.
func DefaultSummary() *types.OptimizationSummary {
	return &types.OptimizationSummary{
		ChangesMade:            []string{"Resume optimized for ATS compatibility"},
		KeywordsAdded:          []string{},
		SkillsEmphasized:       []string{},
		ContentReorganized:     []string{},
		AchievementsQuantified: []string{},
		OverallStrategy:        "Resume structured and tailored to match the job requirements",
	}
}

// EnsureSummary fills in a default optimization summary when the model
// omitted the section, so downstream rendering never has to branch on nil.
func EnsureSummary(resume *types.OptimizedResume) {
	if resume.OptimizationSummary == nil {
		resume.OptimizationSummary = DefaultSummary()
	}
}
