// Package validation checks optimized resumes against the fixed-count rules
// the generation prompt asks for, and coerces near-miss output into shape.
package validation

import (
	"fmt"

	"github.com/jonathan/ats-optimizer/internal/types"
)

const (
	// TasksPerExperience is the number of task bullets every experience
	// entry is expected to carry.
	TasksPerExperience = 4

	// GoalsPerProject is the number of goal bullets every project entry is
	// expected to carry.
	GoalsPerProject = 2
)

// Issue describes one structural deviation. Issues are warnings, not errors:
// LLM output that misses a count is coerced, never rejected.
type Issue struct {
	Field    string
	Expected int
	Actual   int
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: expected %d items, got %d", i.Field, i.Expected, i.Actual)
}

// CheckStructure reports every experience whose task list is not exactly
// TasksPerExperience long and every project whose goal list is not exactly
// GoalsPerProject long. Degraded resumes synthesized from raw text are
// exempt; their empty sections are expected.
func CheckStructure(resume *types.OptimizedResume) []Issue {
	if resume.IsDegraded() {
		return nil
	}

	var issues []Issue
	for i, exp := range resume.UserInformation.Experiences {
		if len(exp.FourTasks) != TasksPerExperience {
			issues = append(issues, Issue{
				Field:    fmt.Sprintf("user_information.experiences[%d].four_tasks", i),
				Expected: TasksPerExperience,
				Actual:   len(exp.FourTasks),
			})
		}
	}
	for i, proj := range resume.Projects {
		if len(proj.TwoGoals) != GoalsPerProject {
			issues = append(issues, Issue{
				Field:    fmt.Sprintf("projects[%d].two_goals_of_the_project", i),
				Expected: GoalsPerProject,
				Actual:   len(proj.TwoGoals),
			})
		}
	}
	return issues
}

// Coerce rewrites the resume in place so every count rule holds: overlong
// lists are truncated, short lists are padded with a placeholder derived from
// the entry. Coercion is deterministic so repeated runs agree. It returns the
// issues that were present before coercion.
func Coerce(resume *types.OptimizedResume) []Issue {
	issues := CheckStructure(resume)
	if len(issues) == 0 {
		return nil
	}

	for i := range resume.UserInformation.Experiences {
		exp := &resume.UserInformation.Experiences[i]
		exp.FourTasks = fitList(exp.FourTasks, TasksPerExperience,
			fmt.Sprintf("Contributed to responsibilities as %s at %s", fallback(exp.JobTitle, "team member"), fallback(exp.Company, "the company")))
	}
	for i := range resume.Projects {
		proj := &resume.Projects[i]
		proj.TwoGoals = fitList(proj.TwoGoals, GoalsPerProject,
			fmt.Sprintf("Deliver the goals of %s", fallback(proj.ProjectName, "the project")))
	}
	return issues
}

// fitList truncates or pads items to exactly want entries.
func fitList(items []string, want int, placeholder string) []string {
	if len(items) > want {
		return items[:want]
	}
	for len(items) < want {
		items = append(items, placeholder)
	}
	return items
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
