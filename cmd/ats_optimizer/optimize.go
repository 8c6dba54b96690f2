package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/config"
	"github.com/jonathan/ats-optimizer/internal/pipeline"
)

var optimizeCommand = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize a resume against a job description end-to-end",
	Long: `Runs the full optimization pipeline: ingestion -> scoring -> LLM rewrite -> structure validation -> LaTeX rendering -> re-scoring -> persistence.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runOptimizeCmd,
}

var (
	optConfigPath  string
	optResume      string
	optJob         string
	optJobURL      string
	optTitle       string
	optTemplate    string
	optModel       string
	optTemperature float64
	optOutput      string
	optAPIKey      string
	optUseBrowser  bool
	optVerbose     bool
	optDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	optimizeCommand.Flags().StringVar(&optConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	optimizeCommand.Flags().StringVarP(&optResume, "resume", "r", "", "Path to resume file (txt, md, pdf, docx)")
	optimizeCommand.Flags().StringVarP(&optJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	optimizeCommand.Flags().StringVar(&optJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job)")
	optimizeCommand.Flags().StringVar(&optTitle, "title", "", "Title for the stored resume")
	optimizeCommand.Flags().StringVarP(&optTemplate, "template", "t", "", "Path to LaTeX template (optional, embedded default used otherwise)")
	optimizeCommand.Flags().StringVar(&optModel, "model", "", "Gemini model name override")
	optimizeCommand.Flags().Float64Var(&optTemperature, "temperature", 0, "Sampling temperature (0.0-1.0)")
	optimizeCommand.Flags().StringVarP(&optOutput, "output", "o", "", "Path to write the rendered resume.tex (optional)")
	optimizeCommand.Flags().BoolVar(&optUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	optimizeCommand.Flags().BoolVarP(&optVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	optimizeCommand.Flags().StringVar(&optAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for optimization history persistence
	optimizeCommand.Flags().StringVar(&optDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(optimizeCommand)
}

func runOptimizeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if optConfigPath != "" {
		loadedCfg, err := config.LoadConfig(optConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if optVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", optConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = optResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = optJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = optJobURL
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = optTemplate
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = optModel
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = optTemperature
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = optAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = optUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = optVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = optDatabaseURL
	}

	// Step 3: Fill remaining values from the environment
	cfg.FromEnv()

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%s environment variable or --api-key flag is required", config.EnvAPIKey)
	}

	opts := pipeline.RunOptions{
		ResumePath:   cfg.Resume,
		JobPath:      cfg.Job,
		JobURL:       cfg.JobURL,
		Title:        optTitle,
		TemplatePath: cfg.Template,
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		Temperature:  float32(cfg.Temperature),
		UseBrowser:   cfg.UseBrowser,
		Verbose:      cfg.Verbose,
		DatabaseURL:  cfg.DatabaseURL,
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if optOutput != "" {
		if err := os.WriteFile(optOutput, []byte(result.Latex), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", optOutput, err)
		}
		fmt.Printf("Wrote %s\n", optOutput)
	} else {
		fmt.Println(result.Latex)
	}

	if result.FinalMatch != nil {
		fmt.Printf("Final ATS score: %d\n", result.FinalMatch.FinalScore)
	}
	return nil
}
