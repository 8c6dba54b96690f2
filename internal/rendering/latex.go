// Package rendering renders optimized resumes as LaTeX documents.
package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/ats-optimizer/internal/types"
)

//go:embed resume.tex.tmpl
var defaultTemplate string

// RenderResume renders the resume with the embedded default template.
func RenderResume(resume *types.OptimizedResume) (string, error) {
	return renderWithContent(defaultTemplate, resume)
}

// RenderResumeWithTemplate renders the resume with a caller-supplied LaTeX
// template file. The template receives the OptimizedResume as its data and
// may call the escape and joinEscaped functions.
func RenderResumeWithTemplate(resume *types.OptimizedResume, templatePath string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return renderWithContent(string(content), resume)
}

func renderWithContent(content string, resume *types.OptimizedResume) (string, error) {
	if resume == nil {
		return "", &RenderError{Message: "resume is nil"}
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape":      EscapeLaTeX,
		"joinEscaped": joinEscaped,
	}).Parse(content)
	if err != nil {
		return "", &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, resume); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// joinEscaped escapes each item and joins with sep.
func joinEscaped(items []string, sep string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = EscapeLaTeX(item)
	}
	return strings.Join(escaped, sep)
}
