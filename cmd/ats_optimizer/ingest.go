package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/ingestion"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a resume or job posting and write cleaned text",
	Long:  `Reads a document from a file (txt, md, pdf, docx) or a URL, normalizes the text, and writes the cleaned content plus a metadata sidecar to the output directory.`,
	RunE:  runIngestCmd,
}

var (
	ingestFile       string
	ingestURL        string
	ingestOut        string
	ingestName       string
	ingestUseBrowser bool
	ingestVerbose    bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to document (mutually exclusive with --url)")
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch (mutually exclusive with --file)")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "out", "Output directory")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "Base name for output files (defaults to the source name)")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(ingestCmd)
}

func runIngestCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	var (
		text string
		meta *ingestion.Metadata
		err  error
		name = ingestName
	)

	if ingestFile != "" {
		text, meta, err = ingestion.IngestFromFile(ingestFile)
		if err != nil {
			return err
		}
		text = ingestion.CleanText(text)
		if name == "" {
			base := filepath.Base(ingestFile)
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	} else {
		text, meta, err = ingestion.IngestFromURL(ctx, ingestURL, ingestUseBrowser, ingestVerbose)
		if err != nil {
			return err
		}
		if name == "" {
			name = "job_posting"
		}
	}

	if err := ingestion.WriteOutput(ingestOut, name, text, meta); err != nil {
		return err
	}

	fmt.Printf("Wrote %s and %s (%d chars)\n",
		filepath.Join(ingestOut, name+".cleaned.txt"),
		filepath.Join(ingestOut, name+".meta.json"),
		meta.Chars)
	return nil
}
