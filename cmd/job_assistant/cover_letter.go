package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/db"
	"github.com/jonathan/job-assistant/internal/schemas"
	"github.com/jonathan/job-assistant/internal/types"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Personalize a cover-letter template for a job",
	Long: "Fill a cover-letter template using job information (as printed by `analyze`) and an optional résumé. " +
		"Without a template the built-in default is used.",
	RunE: runCoverLetter,
}

var (
	letterTemplate string
	letterJobInfo  string
	letterResume   string
	letterOut      string
)

func init() {
	coverLetterCmd.Flags().StringVar(&letterTemplate, "template", "", "Path to cover-letter template")
	coverLetterCmd.Flags().StringVarP(&letterJobInfo, "job-info", "j", "", "Path to job info JSON (required)")
	coverLetterCmd.Flags().StringVarP(&letterResume, "resume", "r", "", "Path to résumé JSON")
	coverLetterCmd.Flags().StringVarP(&letterOut, "out", "o", "", "Write the letter to this file instead of stdout")
	_ = coverLetterCmd.MarkFlagRequired("job-info")
	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	template, err := readTemplate(letterTemplate)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(letterJobInfo)
	if err != nil {
		return fmt.Errorf("failed to read job info: %w", err)
	}
	info, err := schemas.ParseJobInfo(data)
	if err != nil {
		return fmt.Errorf("invalid job info %s: %w", letterJobInfo, err)
	}

	resume, err := readResume(letterResume)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	letter := a.personalizer.Personalize(cmd.Context(), template, info, resume)
	if letterOut != "" {
		if err := os.WriteFile(letterOut, []byte(letter+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", letterOut, err)
		}
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), letter)
	return err
}

// readTemplate reads a template file, or returns the default cover letter for an empty path.
func readTemplate(path string) (string, error) {
	if path == "" {
		return db.DefaultCoverLetterTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// readResume validates and decodes a résumé file. An empty path yields an empty résumé.
func readResume(path string) (*types.ResumeData, error) {
	if path == "" {
		return &types.ResumeData{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	resume, err := schemas.ParseResume(data)
	if err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", path, err)
	}
	return resume, nil
}
