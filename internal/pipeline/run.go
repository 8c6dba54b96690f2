// Package pipeline provides the high-level orchestration for resume
// optimization: ingest, score, generate, validate, render, persist.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/ats-optimizer/internal/db"
	"github.com/jonathan/ats-optimizer/internal/ingestion"
	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/observability"
	"github.com/jonathan/ats-optimizer/internal/optimizer"
	"github.com/jonathan/ats-optimizer/internal/prompts"
	"github.com/jonathan/ats-optimizer/internal/rendering"
	"github.com/jonathan/ats-optimizer/internal/schemas"
	"github.com/jonathan/ats-optimizer/internal/scoring"
	"github.com/jonathan/ats-optimizer/internal/types"
	"github.com/jonathan/ats-optimizer/internal/validation"
)

// Step names used in progress events.
const (
	StepIngestResume = "ingest_resume"
	StepIngestJob    = "ingest_job"
	StepOptimize     = "optimize"
	StepValidate     = "validate"
	StepRender       = "render"
	StepScoreFinal   = "score_final"
	StepPersist      = "persist"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline. Exactly one resume
// source (ResumeText or ResumePath) and one job source (JobText, JobPath, or
// JobURL) must be set.
type RunOptions struct {
	// ResumeID attaches the run to an existing stored resume instead of
	// inserting a new row. The resume text must still be supplied.
	ResumeID     uuid.UUID
	ResumeText   string
	ResumePath   string
	JobText      string
	JobPath      string
	JobURL       string
	Title        string
	TemplatePath string
	APIKey       string
	Model        string
	Temperature  float32
	UseBrowser   bool
	Verbose      bool
	// Database, when set, is used for persistence and stays open after the
	// run. DatabaseURL is only consulted when Database is nil; that
	// connection is owned by the run and closed on return.
	Database    *db.DB
	DatabaseURL string
	OnProgress  ProgressCallback
}

// Result holds the outputs of a pipeline run.
type Result struct {
	ResumeID       uuid.UUID
	OptimizationID uuid.UUID
	InitialMatch   *types.MatchResult
	FinalMatch     *types.MatchResult
	Resume         *types.OptimizedResume
	Latex          string
	Issues         []validation.Issue
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// Run executes the full optimization pipeline.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)

	// Database persistence is best-effort: a missing database degrades to a
	// run without history, never to a failed run.
	database := opts.Database
	if database == nil && opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				fmt.Printf("Warning: Failed to run migrations: %v\n", err)
			}
		}
	}

	// Step 1: gather inputs.
	resumeText, err := loadResume(opts)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, StepIngestResume, "Ingested resume", nil)

	jobText, err := loadJob(ctx, opts)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, StepIngestJob, "Ingested job description", nil)

	// Build the LLM client and prompt source.
	config := llm.DefaultConfig()
	if opts.Model != "" {
		config = config.WithModel(opts.Model)
	}
	client, err := llm.NewClient(ctx, config, opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	source := prompts.Defaults()
	if database != nil {
		source = prompts.WithStore(database)
	}

	// Record the run before calling the LLM so failures are persisted too.
	var resumeID, optID uuid.UUID
	if database != nil {
		if opts.ResumeID != uuid.Nil {
			resumeID = opts.ResumeID
		} else {
			resumeID, err = database.CreateResume(ctx, resumeTitle(opts), resumeText, jobText)
			if err != nil {
				fmt.Printf("Warning: Failed to store resume: %v\n", err)
			}
		}
		if resumeID != uuid.Nil {
			if optID, err = database.CreateOptimization(ctx, resumeID); err != nil {
				fmt.Printf("Warning: Failed to create optimization record: %v\n", err)
			}
		}
	}

	// Step 2: generate. The optimizer scores the original resume internally
	// and attaches the result as ats_metrics.
	fmt.Printf("Optimizing resume against job description...\n")
	opt := optimizer.New(client, source)
	resume, err := opt.GenerateOptimizedResume(ctx, resumeText, jobText, opts.Temperature)
	if err != nil {
		if database != nil && optID != uuid.Nil {
			_ = database.FailOptimization(ctx, optID, err.Error())
		}
		return nil, err
	}
	emitProgress(&opts, StepOptimize, "Generated optimized resume", nil)

	initialMatch := matchFromMetrics(resume.ATSMetrics)
	if opts.Verbose {
		printer.PrintMatchResult("INITIAL ATS SCORE", initialMatch)
		printer.PrintOptimizedResume(resume)
	}

	// Step 3: enforce structure rules, then sanity-check the shape.
	issues := validation.Coerce(resume)
	if opts.Verbose {
		printer.PrintStructureIssues(issues)
	}
	if err := schemas.ValidateOptimizedResume(resume); err != nil {
		fmt.Printf("Warning: optimized resume failed schema validation: %v\n", err)
	}
	emitProgress(&opts, StepValidate, fmt.Sprintf("Validated structure (%d issues coerced)", len(issues)), nil)

	// Step 4: render LaTeX.
	latex, err := renderLatex(resume, opts.TemplatePath)
	if err != nil {
		if database != nil && optID != uuid.Nil {
			_ = database.FailOptimization(ctx, optID, err.Error())
		}
		return nil, err
	}
	emitProgress(&opts, StepRender, "Rendered LaTeX resume", nil)

	// Step 5: re-score the optimized resume. Best effort; the run succeeds
	// without a final score.
	var finalMatch *types.MatchResult
	scorer := scoring.NewScorer(client, source)
	finalMatch, err = scorer.ComputeMatchScore(ctx, FlattenResume(resume), jobText, opts.Temperature)
	if err != nil {
		fmt.Printf("Warning: failed to re-score optimized resume: %v\n", err)
		finalMatch = nil
	} else {
		emitProgress(&opts, StepScoreFinal, fmt.Sprintf("Final ATS score: %d", finalMatch.FinalScore), nil)
		if opts.Verbose {
			printer.PrintMatchResult("FINAL ATS SCORE", finalMatch)
		}
	}

	// Step 6: persist the completed result.
	if database != nil && optID != uuid.Nil {
		result := &db.OptimizationResult{
			Recommendation: "",
			OptimizedJSON:  resume,
			LatexContent:   latex,
			Degraded:       resume.IsDegraded(),
		}
		if initialMatch != nil {
			score := initialMatch.FinalScore
			result.InitialScore = &score
			result.MatchingSkills = initialMatch.MatchingSkills
			result.MissingSkills = initialMatch.MissingSkills
			result.Recommendation = initialMatch.Recommendation
		}
		if finalMatch != nil {
			score := finalMatch.FinalScore
			result.FinalScore = &score
		}
		if err := database.CompleteOptimization(ctx, optID, result); err != nil {
			fmt.Printf("Warning: Failed to store optimization result: %v\n", err)
		} else {
			emitProgress(&opts, StepPersist, "Stored optimization result", nil)
		}
	}

	return &Result{
		ResumeID:       resumeID,
		OptimizationID: optID,
		InitialMatch:   initialMatch,
		FinalMatch:     finalMatch,
		Resume:         resume,
		Latex:          latex,
		Issues:         issues,
	}, nil
}

func loadResume(opts RunOptions) (string, error) {
	if opts.ResumeText != "" {
		return ingestion.CleanText(opts.ResumeText), nil
	}
	if opts.ResumePath == "" {
		return "", fmt.Errorf("no resume provided: set ResumeText or ResumePath")
	}
	text, _, err := ingestion.IngestFromFile(opts.ResumePath)
	if err != nil {
		return "", fmt.Errorf("resume ingestion failed: %w", err)
	}
	return text, nil
}

func loadJob(ctx context.Context, opts RunOptions) (string, error) {
	switch {
	case opts.JobText != "":
		return ingestion.CleanText(opts.JobText), nil
	case opts.JobURL != "":
		text, _, err := ingestion.IngestFromURL(ctx, opts.JobURL, opts.UseBrowser, opts.Verbose)
		if err != nil {
			return "", fmt.Errorf("job ingestion from URL failed: %w", err)
		}
		return text, nil
	case opts.JobPath != "":
		text, _, err := ingestion.IngestFromFile(opts.JobPath)
		if err != nil {
			return "", fmt.Errorf("job ingestion from file failed: %w", err)
		}
		return text, nil
	}
	return "", fmt.Errorf("no job description provided: set JobText, JobPath, or JobURL")
}

func renderLatex(resume *types.OptimizedResume, templatePath string) (string, error) {
	if templatePath != "" {
		return rendering.RenderResumeWithTemplate(resume, templatePath)
	}
	return rendering.RenderResume(resume)
}

func resumeTitle(opts RunOptions) string {
	if opts.Title != "" {
		return opts.Title
	}
	if opts.ResumePath != "" {
		return opts.ResumePath
	}
	return "Untitled resume"
}

func matchFromMetrics(metrics *types.ATSMetrics) *types.MatchResult {
	if metrics == nil {
		return nil
	}
	return &types.MatchResult{
		FinalScore:     metrics.InitialScore,
		MatchingSkills: metrics.MatchingSkills,
		MissingSkills:  metrics.MissingSkills,
		Recommendation: metrics.Recommendation,
	}
}

// FlattenResume serializes the structured resume back to plain text so it can
// be re-scored with the same extraction path as the original.
func FlattenResume(resume *types.OptimizedResume) string {
	var sb strings.Builder
	info := resume.UserInformation

	sb.WriteString(info.Name + "\n")
	sb.WriteString(info.MainJobTitle + "\n\n")
	if info.ProfileDescription != "" {
		sb.WriteString(info.ProfileDescription + "\n\n")
	}

	if len(info.Skills.HardSkills) > 0 || len(info.Skills.SoftSkills) > 0 {
		sb.WriteString("Skills:\n")
		for _, skill := range info.Skills.HardSkills {
			sb.WriteString("- " + skill + "\n")
		}
		for _, skill := range info.Skills.SoftSkills {
			sb.WriteString("- " + skill + "\n")
		}
		sb.WriteString("\n")
	}

	for _, exp := range info.Experiences {
		sb.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", exp.JobTitle, exp.Company, exp.StartDate, exp.EndDate))
		for _, task := range exp.FourTasks {
			sb.WriteString("- " + task + "\n")
		}
		sb.WriteString("\n")
	}

	for _, proj := range resume.Projects {
		sb.WriteString(proj.ProjectName + "\n")
		for _, goal := range proj.TwoGoals {
			sb.WriteString("- " + goal + "\n")
		}
		if len(proj.TechStack) > 0 {
			sb.WriteString("Stack: " + strings.Join(proj.TechStack, ", ") + "\n")
		}
		sb.WriteString("\n")
	}

	for _, edu := range info.Education {
		sb.WriteString(fmt.Sprintf("%s, %s\n", edu.Degree, edu.Institution))
	}
	for _, cert := range resume.Certificates {
		sb.WriteString(cert.Name + "\n")
	}

	return strings.TrimSpace(sb.String())
}
