package optimizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stageClient routes LLM calls by prompt content so one fake can serve the
// extraction, recommendation, and generation stages of a single run.
type stageClient struct {
	resumeSkillsJSON string
	jobReqsJSON      string
	extractionErr    error

	generationResponse string
	generationErr      error
	generationPrompt   string
}

func (c *stageClient) Complete(_ context.Context, _ string, _ float32) (string, error) {
	return "", errors.New("no recommendation")
}

func (c *stageClient) CompleteJSON(_ context.Context, prompt string, _ float32) (string, error) {
	switch {
	case strings.Contains(prompt, "Resume Skill Extractor"):
		if c.extractionErr != nil {
			return "", c.extractionErr
		}
		return c.resumeSkillsJSON, nil
	case strings.Contains(prompt, "Job Requirement Extractor"):
		if c.extractionErr != nil {
			return "", c.extractionErr
		}
		return c.jobReqsJSON, nil
	default:
		c.generationPrompt = prompt
		if c.generationErr != nil {
			return "", c.generationErr
		}
		return c.generationResponse, nil
	}
}

func (c *stageClient) Close() error { return nil }

const structuredResponse = `{
	"user_information": {
		"name": "Ada Lovelace",
		"main_job_title": "Backend Engineer",
		"profile_description": "Engineer with Python and SQL experience.",
		"email": "ada@example.com",
		"linkedin": "",
		"github": "",
		"experiences": [],
		"education": [],
		"skills": {"hard_skills": ["Python", "SQL"], "soft_skills": ["Communication"]},
		"hobbies": []
	},
	"projects": [],
	"certificate": [],
	"extra_curricular_activities": []
}`

func TestGenerateOptimizedResume_StructuredResponse(t *testing.T) {
	client := &stageClient{
		resumeSkillsJSON:   `{"items": ["Python", "SQL"]}`,
		jobReqsJSON:        `{"items": ["Python", "Docker"]}`,
		generationResponse: structuredResponse,
	}
	opt := New(client, nil)

	resume, err := opt.GenerateOptimizedResume(context.Background(), "resume text", "job text", 0)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", resume.UserInformation.Name)
	assert.False(t, resume.IsDegraded())

	require.NotNil(t, resume.ATSMetrics)
	assert.Equal(t, 50, resume.ATSMetrics.InitialScore)
	assert.Equal(t, []string{"Docker"}, resume.ATSMetrics.MissingSkills)
	assert.Equal(t, []string{"Python"}, resume.ATSMetrics.MatchingSkills)

	require.NotNil(t, resume.OptimizationSummary)
	assert.NotEmpty(t, resume.OptimizationSummary.OverallStrategy)
}

func TestGenerateOptimizedResume_PromptCarriesMissingSkills(t *testing.T) {
	client := &stageClient{
		resumeSkillsJSON:   `{"items": ["Python"]}`,
		jobReqsJSON:        `{"items": ["Python", "Kubernetes"]}`,
		generationResponse: structuredResponse,
	}
	opt := New(client, nil)

	_, err := opt.GenerateOptimizedResume(context.Background(), "resume text", "job text", 0)
	require.NoError(t, err)

	assert.Contains(t, client.generationPrompt, skillsSectionHeader)
	assert.Contains(t, client.generationPrompt, "'Kubernetes'")
	assert.Contains(t, client.generationPrompt, "resume text")
	assert.Contains(t, client.generationPrompt, "job text")
}

func TestGenerateOptimizedResume_ScoringFailureStillGenerates(t *testing.T) {
	client := &stageClient{
		extractionErr:      errors.New("quota exceeded"),
		generationResponse: structuredResponse,
	}
	opt := New(client, nil)

	resume, err := opt.GenerateOptimizedResume(context.Background(), "resume text", "job text", 0)
	require.NoError(t, err)

	assert.Nil(t, resume.ATSMetrics)
	assert.NotContains(t, client.generationPrompt, skillsSectionHeader)
}

func TestGenerateOptimizedResume_TransportError(t *testing.T) {
	client := &stageClient{
		resumeSkillsJSON: `{"items": ["Python"]}`,
		jobReqsJSON:      `{"items": ["Python"]}`,
		generationErr:    errors.New("connection reset"),
	}
	opt := New(client, nil)

	_, err := opt.GenerateOptimizedResume(context.Background(), "resume text", "job text", 0)
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "connection reset")
}

func TestGenerateOptimizedResume_FreeTextDegrades(t *testing.T) {
	prose := "I optimized your resume by emphasizing your Python background and restructuring the summary."
	client := &stageClient{
		resumeSkillsJSON:   `{"items": ["Python"]}`,
		jobReqsJSON:        `{"items": ["Python", "Docker"]}`,
		generationResponse: prose,
	}
	opt := New(client, nil)

	resume, err := opt.GenerateOptimizedResume(context.Background(), "resume text", "job text", 0)
	require.NoError(t, err)

	assert.True(t, resume.IsDegraded())
	assert.Equal(t, prose, resume.RawTextResponse)
	assert.Contains(t, resume.UserInformation.ProfileDescription, "could not be structured")
	assert.Equal(t, []string{"Python"}, resume.UserInformation.Skills.HardSkills)
}

func TestGenerateOptimizedResume_ConversationalResponseRecovered(t *testing.T) {
	client := &stageClient{
		resumeSkillsJSON:   `{"items": ["Python"]}`,
		jobReqsJSON:        `{"items": ["Python"]}`,
		generationResponse: "Here's the optimized resume:\n```json\n" + structuredResponse + "\n```",
	}
	opt := New(client, nil)

	resume, err := opt.GenerateOptimizedResume(context.Background(), "resume text", "job text", 0)
	require.NoError(t, err)

	assert.False(t, resume.IsDegraded())
	assert.Equal(t, "Ada Lovelace", resume.UserInformation.Name)
}
