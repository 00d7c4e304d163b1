package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/ingestion"
	"github.com/jonathan/job-assistant/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract structured job information from a posting",
	Long:  "Scrape a URL or read a text file and print the job information as JSON. Without an API key the regex fallback is used.",
	RunE:  runAnalyze,
}

var (
	analyzeURL      string
	analyzeTextFile string
	analyzeOut      string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "URL to fetch job posting from")
	analyzeCmd.Flags().StringVarP(&analyzeTextFile, "text-file", "t", "", "Path to text file containing job posting")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write JSON to this file instead of stdout")
	analyzeCmd.MarkFlagsMutuallyExclusive("url", "text-file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeURL == "" && analyzeTextFile == "" {
		return fmt.Errorf("either --url or --text-file must be provided")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	text, sourceURL := "", analyzeURL
	if analyzeTextFile != "" {
		text, err = ingestion.ReadTextFile(analyzeTextFile)
		if err != nil {
			return err
		}
	} else {
		posting, _ := a.runner(nil).Scrape(cmd.Context(), analyzeURL)
		if !posting.Success {
			return fmt.Errorf("scrape failed: %s", posting.Error)
		}
		if cfg.Verbose {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintPosting(posting)
		}
		text = posting.Content
	}

	info := a.analyzer.Analyze(cmd.Context(), text, sourceURL)
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJobInfo(info)
	}
	return writeJSON(cmd.OutOrStdout(), analyzeOut, info)
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
