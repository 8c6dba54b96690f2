package optimizer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/prompts"
)

// skillsSectionHeader marks the recommended-skills block inside the
// generation prompt. Tests and prompt audits key off this literal.
const skillsSectionHeader = "## RECOMMENDED SKILLS TO ADD"

// BuildSkillsSection renders the recommended-skills block listing every
// missing skill verbatim. An empty missing list yields an empty section.
func BuildSkillsSection(missingSkills []string) string {
	if len(missingSkills) == 0 {
		return ""
	}

	quoted := make([]string, len(missingSkills))
	for i, skill := range missingSkills {
		quoted[i] = "'" + skill + "'"
	}

	return fmt.Sprintf(`%s

The following skills were identified as potentially valuable for this position but may be missing or not prominently featured in the resume:

%s

If the candidate has any experience with these skills, even minor exposure:
- Highlight them prominently in the skills section
- Look for ways to showcase these skills in past experience descriptions
- Ensure you're using the exact terminology as listed
- Reframe transferable or implied experience to match the job requirements where ethically possible
- Be assertive in surfacing any relevant experience, even if it is not an exact match, as long as it is truthful
- Do NOT fabricate experience with these skills, only highlight them if they exist`,
		skillsSectionHeader, strings.Join(quoted, ", "))
}

// placeholderForms lists the delimiter styles a stored template may use for a
// given variable, in the order they are tried. Stored overrides have been
// observed with Go-template, double-brace, triple-brace, and single-brace
// placeholders.
func placeholderForms(goName, snakeName string) []string {
	return []string{
		"{{." + goName + "}}",
		"{{" + snakeName + "}}",
		"{{{" + snakeName + "}}}",
		"{" + snakeName + "}",
	}
}

// substitute replaces every delimiter form of the variable with value,
// reporting whether any occurrence was found.
func substitute(template, goName, snakeName, value string) (string, bool) {
	found := false
	for _, form := range placeholderForms(goName, snakeName) {
		if strings.Contains(template, form) {
			template = strings.ReplaceAll(template, form, value)
			found = true
		}
	}
	return template, found
}

// buildPrompt resolves the generation prompt. It prefers a persisted override
// named "resume_optimization"; an override must reference both the job
// description and the resume (in any delimiter style) or it is rejected in
// favor of the embedded default. The skills section is injected when the
// override carries a skills placeholder and appended semantics are left to
// the template author otherwise.
func (o *Optimizer) buildPrompt(ctx context.Context, resumeText, jobDescription, skillsSection string) string {
	if template, ok := o.source.GetTemplate(ctx, prompts.NameResumeOptimization); ok {
		if prompt, ok := renderOverride(template, resumeText, jobDescription, skillsSection); ok {
			return prompt
		}
		log.Printf("optimizer: stored resume_optimization template unusable, using embedded default")
	}

	return renderDefault(resumeText, jobDescription, skillsSection)
}

// renderOverride attempts to render a stored override template. It fails
// (returning false) when the template lacks a job-description or resume
// placeholder in every known delimiter style.
func renderOverride(template, resumeText, jobDescription, skillsSection string) (string, bool) {
	out, foundJob := substitute(template, "JobDescription", "job_description", jobDescription)
	if !foundJob {
		return "", false
	}
	out, foundResume := substitute(out, "Resume", "resume", resumeText)
	if !foundResume {
		return "", false
	}
	// The skills block is optional in overrides; a template without the
	// placeholder simply omits the section.
	out, _ = substitute(out, "RecommendedSkillsSection", "recommended_skills_section", skillsSection)
	return out, true
}

// renderDefault renders the embedded default template.
func renderDefault(resumeText, jobDescription, skillsSection string) string {
	template := prompts.MustGet("optimization.json", prompts.NameResumeOptimization)
	return prompts.Format(template, map[string]string{
		"JobDescription":           jobDescription,
		"Resume":                   resumeText,
		"RecommendedSkillsSection": skillsSection,
	})
}
