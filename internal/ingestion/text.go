package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// boilerplatePattern matches navigation and call-to-action phrases that job
// boards wrap around the description.
var boilerplatePattern = regexp.MustCompile(`(?i)(?:` + strings.Join([]string{
	`Cookie\s+(?:Policy|Notice|Settings)`,
	`Privacy\s+Policy`,
	`Terms\s+(?:of\s+)?(?:Use|Service)`,
	`Sign\s+(?:in|up)`,
	`Subscribe\s+to`,
	`Follow\s+us`,
	`Share\s+this\s+job`,
	`Apply\s+(?:now|online)`,
	`Save\s+(?:this\s+)?job`,
	`Report\s+this\s+job`,
}, "|") + `)`)

// CleanText collapses whitespace and strips boilerplate phrases.
// Removal repeats until nothing matches, so the result is a fixed point:
// CleanText(CleanText(s)) == CleanText(s).
func CleanText(content string) string {
	cleaned := collapseWhitespace(content)
	for {
		next := collapseWhitespace(boilerplatePattern.ReplaceAllString(cleaned, ""))
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}

// collapseWhitespace turns every run of Unicode whitespace into one space and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanLines applies CleanText line by line and drops lines left empty, so
// "label: value" lines survive for the fallback extractors.
func CleanLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if cleaned := CleanText(line); cleaned != "" {
			kept = append(kept, cleaned)
		}
	}
	return strings.Join(kept, "\n")
}

// ReadTextFile reads a pasted job description from disk and cleans it,
// keeping its line breaks.
func ReadTextFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return CleanLines(string(content)), nil
}
