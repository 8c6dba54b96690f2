// Package main provides the entry point for the ATS optimizer CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_optimizer",
	Short: "ATS resume optimizer",
	Long:  "ATS optimizer scores resumes against job descriptions and rewrites them for applicant tracking systems using an LLM, with LaTeX output and a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
