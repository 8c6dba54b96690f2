package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-optimizer/internal/types"
)

func sampleResume() *types.OptimizedResume {
	return &types.OptimizedResume{
		UserInformation: types.UserInformation{
			Name:               "Ada Lovelace",
			MainJobTitle:       "Backend Engineer",
			ProfileDescription: "Engineer focused on data systems & tooling.",
			Email:              "ada@example.com",
			LinkedIn:           "https://linkedin.com/in/ada",
			Experiences: []types.Experience{{
				JobTitle:  "Software Engineer",
				Company:   "Acme Corp",
				StartDate: "2021",
				EndDate:   "2024",
				Location:  "Remote",
				FourTasks: []string{
					"Built ingestion pipelines",
					"Cut query latency by 40%",
					"Led schema migrations",
					"Mentored two engineers",
				},
			}},
			Education: []types.Education{{
				Institution: "University of London",
				Degree:      "BSc Mathematics",
				StartDate:   "2015",
				EndDate:     "2018",
			}},
			Skills: types.Skills{
				HardSkills: []string{"Go", "PostgreSQL"},
				SoftSkills: []string{"Communication"},
			},
			Hobbies: []string{"Chess"},
		},
		Projects: []types.Project{{
			ProjectName: "Analytical Engine",
			TwoGoals:    []string{"Automate computation", "Publish the design"},
			TechStack:   []string{"Brass", "Steam"},
		}},
		Certificates: []types.Certificate{{
			Name:        "Cloud Architect",
			Institution: "ExampleCert",
			Date:        "2023",
		}},
	}
}

func TestRenderResume_ContainsSections(t *testing.T) {
	output, err := RenderResume(sampleResume())
	require.NoError(t, err)

	assert.Contains(t, output, `\documentclass`)
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Built ingestion pipelines")
	assert.Contains(t, output, "Analytical Engine")
	assert.Contains(t, output, "BSc Mathematics")
	assert.Contains(t, output, "Cloud Architect")
	assert.Contains(t, output, `\end{document}`)
}

func TestRenderResume_EscapesSpecialCharacters(t *testing.T) {
	resume := sampleResume()
	resume.UserInformation.ProfileDescription = "Cut costs by 50% & improved C# tooling"

	output, err := RenderResume(resume)
	require.NoError(t, err)

	assert.Contains(t, output, `50\%`)
	assert.Contains(t, output, `\&`)
	assert.Contains(t, output, `C\#`)
}

func TestRenderResume_SkipsEmptySections(t *testing.T) {
	resume := sampleResume()
	resume.Projects = nil
	resume.Certificates = nil
	resume.UserInformation.Hobbies = nil

	output, err := RenderResume(resume)
	require.NoError(t, err)

	assert.NotContains(t, output, `\section*{Projects}`)
	assert.NotContains(t, output, `\section*{Certifications}`)
	assert.NotContains(t, output, `\section*{Interests}`)
}

func TestRenderResume_NilResume(t *testing.T) {
	_, err := RenderResume(nil)
	require.Error(t, err)

	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderResumeWithTemplate_CustomTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "custom.tex.tmpl")
	custom := `NAME: {{ escape .UserInformation.Name }}
SKILLS: {{ joinEscaped .UserInformation.Skills.HardSkills " / " }}`
	require.NoError(t, os.WriteFile(templatePath, []byte(custom), 0644))

	output, err := RenderResumeWithTemplate(sampleResume(), templatePath)
	require.NoError(t, err)

	assert.Equal(t, "NAME: Ada Lovelace\nSKILLS: Go / PostgreSQL", strings.TrimSpace(output))
}

func TestRenderResumeWithTemplate_MissingFile(t *testing.T) {
	_, err := RenderResumeWithTemplate(sampleResume(), "/nonexistent/template.tex.tmpl")
	require.Error(t, err)

	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Contains(t, tmplErr.Error(), "not found")
}

func TestRenderResumeWithTemplate_ParseError(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "broken.tex.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte(`{{ escape .Unclosed `), 0644))

	_, err := RenderResumeWithTemplate(sampleResume(), templatePath)
	require.Error(t, err)

	var tmplErr *TemplateError
	assert.ErrorAs(t, err, &tmplErr)
}
