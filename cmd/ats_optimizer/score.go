package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/config"
	"github.com/jonathan/ats-optimizer/internal/ingestion"
	"github.com/jonathan/ats-optimizer/internal/llm"
	"github.com/jonathan/ats-optimizer/internal/observability"
	"github.com/jonathan/ats-optimizer/internal/prompts"
	"github.com/jonathan/ats-optimizer/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute an ATS match score for a resume against a job description",
	Long:  `Extracts skills from the resume and requirements from the job description, then reports the match percentage, matching and missing skills, and a recommendation.`,
	RunE:  runScoreCmd,
}

var (
	scoreResume      string
	scoreJob         string
	scoreJobURL      string
	scoreModel       string
	scoreTemperature float64
	scoreUseBrowser  bool
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume file (txt, md, pdf, docx)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	scoreCmd.Flags().StringVar(&scoreJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job)")
	scoreCmd.Flags().StringVar(&scoreModel, "model", "", "Gemini model name override")
	scoreCmd.Flags().Float64Var(&scoreTemperature, "temperature", 0, "Sampling temperature (0.0-1.0)")
	scoreCmd.Flags().BoolVar(&scoreUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = scoreCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(scoreCmd)
}

func runScoreCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if scoreJob == "" && scoreJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if scoreJob != "" && scoreJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	apiKey := os.Getenv(config.EnvAPIKey)
	if apiKey == "" {
		return fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
	}

	resumeText, _, err := ingestion.IngestFromFile(scoreResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	resumeText = ingestion.CleanText(resumeText)

	var jobText string
	if scoreJobURL != "" {
		jobText, _, err = ingestion.IngestFromURL(ctx, scoreJobURL, scoreUseBrowser, scoreVerbose)
		if err != nil {
			return fmt.Errorf("failed to fetch job description: %w", err)
		}
	} else {
		raw, err := os.ReadFile(scoreJob)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobText = ingestion.CleanText(string(raw))
	}

	cfg := llm.DefaultConfig()
	if scoreModel != "" {
		cfg = cfg.WithModel(scoreModel)
	}
	client, err := llm.NewClient(ctx, cfg, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	scorer := scoring.NewScorer(client, prompts.Defaults())
	match, err := scorer.ComputeMatchScore(ctx, resumeText, jobText, float32(scoreTemperature))
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMatchResult("ATS MATCH SCORE", match)
	return nil
}
