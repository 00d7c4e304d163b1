package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/db"
	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/jonathan/job-assistant/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process <url>",
	Short: "Scrape, analyze and write a cover letter for one posting",
	Long: "Run the full pipeline for a job URL. When DATABASE_URL is set the result is saved " +
		"to the job history under --session.",
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

var (
	processTemplate string
	processResume   string
	processSession  string
	processOut      string
	processJSON     bool
)

func init() {
	processCmd.Flags().StringVar(&processTemplate, "template", "", "Path to cover-letter template")
	processCmd.Flags().StringVarP(&processResume, "resume", "r", "", "Path to résumé JSON")
	processCmd.Flags().StringVar(&processSession, "session", "", "Session ID to record the application under")
	processCmd.Flags().StringVarP(&processOut, "out", "o", "", "Write the JSON result to this file")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "Print the result as JSON instead of a summary")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	template, err := readTemplate(processTemplate)
	if err != nil {
		return err
	}
	resume, err := readResume(processResume)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var store pipeline.Store
	if cfg.DatabaseURL != "" {
		database, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		store = database
		if processSession != "" {
			if _, err := database.CreateSession(ctx, processSession); err != nil {
				log.Printf("[pipeline] failed to create session %s: %v", processSession, err)
			}
		}
	}

	result, err := a.runner(store).Run(ctx, pipeline.Request{
		URL:       args[0],
		Template:  template,
		Resume:    resume,
		SessionID: processSession,
		OnProgress: func(event pipeline.ProgressEvent) {
			if cfg.Verbose {
				log.Printf("[VERBOSE] %s/%s: %s", event.Category, event.Step, event.Message)
			}
		},
	})
	if err != nil && !errors.Is(err, pipeline.ErrScrapeFailed) {
		return err
	}

	if processOut != "" {
		if err := writeJSON(cmd.OutOrStdout(), processOut, result); err != nil {
			return err
		}
	}
	switch {
	case processJSON:
		if err := writeJSON(cmd.OutOrStdout(), "", result); err != nil {
			return err
		}
	case !cfg.Verbose:
		// Verbose runs already printed each stage.
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintPosting(result.Posting)
		printer.PrintJobInfo(result.JobInfo)
		if result.CoverLetter != "" {
			printer.PrintCoverLetter(result.CoverLetter)
		}
	}

	if err != nil {
		return fmt.Errorf("processing %s: %w", args[0], err)
	}
	return nil
}

// openDatabase connects and applies the schema.
func openDatabase(ctx context.Context, databaseURL string) (*db.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	database, err := db.Connect(connectCtx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(connectCtx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to prepare database: %w", err)
	}
	return database, nil
}
