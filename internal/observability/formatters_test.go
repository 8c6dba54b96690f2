package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-optimizer/internal/types"
	"github.com/jonathan/ats-optimizer/internal/validation"
)

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult("INITIAL ATS SCORE", &types.MatchResult{
		FinalScore:     67,
		MatchingSkills: []string{"Go", "PostgreSQL"},
		MissingSkills:  []string{"Kubernetes"},
	})
	output := buf.String()

	assert.Contains(t, output, "INITIAL ATS SCORE")
	assert.Contains(t, output, "67/100")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Kubernetes")
}

func TestPrintMatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult("SCORE", nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatchResult_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	skills := []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven"}
	p.PrintMatchResult("SCORE", &types.MatchResult{MatchingSkills: skills})
	output := buf.String()

	assert.Contains(t, output, "and 2 more")
	assert.NotContains(t, output, "Seven")
}

func TestPrintOptimizedResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOptimizedResume(&types.OptimizedResume{
		UserInformation: types.UserInformation{
			Name:         "Ada Lovelace",
			MainJobTitle: "Backend Engineer",
		},
		OptimizationSummary: &types.OptimizationSummary{
			OverallStrategy: "Emphasized infrastructure work",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "Emphasized infrastructure")
	assert.NotContains(t, output, "DEGRADED")
}

func TestPrintOptimizedResume_Degraded(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOptimizedResume(&types.OptimizedResume{RawTextResponse: "free text"})

	assert.Contains(t, buf.String(), "DEGRADED")
}

func TestPrintStructureIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStructureIssues([]validation.Issue{
		{Field: "projects[0].two_goals_of_the_project", Expected: 2, Actual: 3},
	})
	output := buf.String()

	assert.Contains(t, output, "STRUCTURE ISSUES (1, coerced)")
	assert.Contains(t, output, "projects[0]")
}

func TestPrintStructureIssues_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStructureIssues(nil)

	assert.Empty(t, buf.String())
}
