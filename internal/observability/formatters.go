// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/types"
	"github.com/jonathan/ats-optimizer/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs a human-readable summary of an ATS match score.
func (p *Printer) PrintMatchResult(title string, result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %d/100\n", result.FinalScore))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Matching skills (%d):\n", len(result.MatchingSkills)))
	appendItems(&sb, result.MatchingSkills)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Missing skills (%d):\n", len(result.MissingSkills)))
	appendItems(&sb, result.MissingSkills)

	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

// PrintOptimizedResume outputs a summary of the generated resume.
func (p *Printer) PrintOptimizedResume(resume *types.OptimizedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:        %s\n", resume.UserInformation.Name))
	sb.WriteString(fmt.Sprintf("Title:       %s\n", resume.UserInformation.MainJobTitle))
	sb.WriteString(fmt.Sprintf("Experiences: %d\n", len(resume.UserInformation.Experiences)))
	sb.WriteString(fmt.Sprintf("Projects:    %d\n", len(resume.Projects)))
	sb.WriteString(fmt.Sprintf("Hard skills: %d\n", len(resume.UserInformation.Skills.HardSkills)))

	if resume.IsDegraded() {
		sb.WriteString("\n")
		sb.WriteString("DEGRADED: output synthesized from raw text\n")
	}

	if summary := resume.OptimizationSummary; summary != nil && summary.OverallStrategy != "" {
		sb.WriteString("\n")
		sb.WriteString("Strategy: " + summary.OverallStrategy + "\n")
	}

	p.printBox("OPTIMIZED RESUME", strings.TrimRight(sb.String(), "\n"))
}

// PrintStructureIssues outputs the count-rule deviations found before coercion.
func (p *Printer) PrintStructureIssues(issues []validation.Issue) {
	if len(issues) == 0 {
		return
	}

	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(issue.String() + "\n")
	}
	p.printBox(fmt.Sprintf("STRUCTURE ISSUES (%d, coerced)", len(issues)), strings.TrimRight(sb.String(), "\n"))
}

func appendItems(sb *strings.Builder, items []string) {
	for i, item := range items {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
			break
		}
		sb.WriteString("  - " + item + "\n")
	}
}
