// Package main provides the job_assistant CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	useBrowser bool
)

var rootCmd = &cobra.Command{
	Use:   "job_assistant",
	Short: "Job posting scraper, analyzer and cover-letter writer",
	Long: "job_assistant scrapes job postings into clean text, extracts structured job information " +
		"with Gemini, and personalizes cover-letter templates. Run `serve` for the HTTP API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&useBrowser, "use-browser", false, "Re-render short pages with headless Chrome")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
