package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/config"
	"github.com/jonathan/ats-optimizer/internal/server"
)

var (
	servePort  int
	serveModel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for scoring, optimization, stored resumes and prompt templates.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env var or 8080)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Gemini model name override")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{Port: servePort, Model: serveModel}
	cfg.FromEnv()
	if cfg.Port == 0 {
		cfg.Port = config.DefaultPort
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("%s environment variable is required", config.EnvDatabaseURL)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
