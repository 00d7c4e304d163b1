package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	input := "  Senior\tEngineer\n\n\nBuild   services\r\nand tools  "
	assert.Equal(t, "Senior Engineer Build services and tools", CleanText(input))
}

func TestCleanText_RemovesBoilerplate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"cookie policy", "Cookie Policy Great role", "Great role"},
		{"cookie settings", "Great role cookie   settings", "Great role"},
		{"privacy", "Great role Privacy Policy", "Great role"},
		{"terms of use", "Terms of Use Great role", "Great role"},
		{"terms service", "TERMS SERVICE Great role", "Great role"},
		{"sign in", "Sign in Great role Sign up", "Great role"},
		{"subscribe", "Subscribe to alerts", "alerts"},
		{"follow", "Follow us on social", "on social"},
		{"share", "Share this job now", "now"},
		{"apply", "Apply now or Apply online", "or"},
		{"save", "Save job Save this job", ""},
		{"report", "Report this job", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_RemovalThatFormsNewMatch(t *testing.T) {
	// Removing the inner phrase joins "Sign" and "in" into a new match.
	input := "Sign Privacy Policy in Great role"
	got := CleanText(input)
	assert.Equal(t, "Great role", got)
	assert.Equal(t, got, CleanText(got))
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		techCorpHTML,
		"Apply Apply now now",
		"Save this Save job job and Report this job",
		"Terms of Terms of Use Use",
		"Café — résumé ünïcode",
	}

	for _, input := range inputs {
		once := CleanText(input)
		assert.Equal(t, once, CleanText(once), "input %q", input)
	}
}

func TestCleanText_NoBoilerplateOrRawWhitespaceRemains(t *testing.T) {
	input := "Apply now\n\nWe hire.\tFollow   us\nPrivacy\nPolicy Sign\tup"
	got := CleanText(input)

	assert.False(t, boilerplatePattern.MatchString(got), got)
	assert.NotContains(t, got, "  ")
	assert.NotContains(t, got, "\n")
	assert.NotContains(t, got, "\t")
	assert.Equal(t, strings.TrimSpace(got), got)
}

func TestReadTextFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("Backend Engineer\n\nApply now\nGo and Postgres"), 0o600))

	text, err := ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer\nGo and Postgres", text)
}

func TestCleanLines(t *testing.T) {
	input := "Company:   Initech\r\n\n  Title: TPS Engineer  \nSave this job\nWe build   reports."
	assert.Equal(t, "Company: Initech\nTitle: TPS Engineer\nWe build reports.", CleanLines(input))
	assert.Equal(t, CleanLines(input), CleanLines(CleanLines(input)))
	assert.Empty(t, CleanLines(" \n\t\n"))
}

func TestReadTextFile_FileNotFound(t *testing.T) {
	_, err := ReadTextFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
