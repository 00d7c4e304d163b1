// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewChars bounds the posting text shown in a box
	previewChars = 240
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// PrintPosting outputs a summary of a scraped job posting.
func (p *Printer) PrintPosting(posting *types.JobPosting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:     %s\n", posting.URL))
	if !posting.Success {
		sb.WriteString(fmt.Sprintf("Status:  failed\nError:   %s", posting.Error))
		p.printBox("Job Posting", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Title:   %s\n", posting.Title))
	sb.WriteString(fmt.Sprintf("Length:  %d chars\n\n", utf8.RuneCountInString(posting.Content)))
	preview := posting.Content
	if utf8.RuneCountInString(preview) > previewChars {
		preview = string([]rune(preview)[:previewChars]) + "..."
	}
	sb.WriteString(wrap(preview, boxWidth-4))

	p.printBox("Job Posting", sb.String())
}

// PrintJobInfo outputs a human-readable summary of the structured job info.
func (p *Printer) PrintJobInfo(info *types.JobInfo) {
	if info == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", info.CompanyName))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", info.PositionTitle))
	for _, field := range []struct{ label, value string }{
		{"Location", info.Location},
		{"Type", info.JobType},
		{"Salary", info.SalaryRange},
		{"Remote", info.RemoteWork},
	} {
		if field.value != "" {
			sb.WriteString(fmt.Sprintf("%-9s %s\n", field.label+":", field.value))
		}
	}

	writeList(&sb, "Key Requirements", info.KeyRequirements)
	writeList(&sb, "Preferred Skills", info.PreferredSkills)
	writeList(&sb, "Benefits", info.Benefits)

	p.printBox("Job Info", strings.TrimRight(sb.String(), "\n"))
}

// PrintCoverLetter outputs the generated letter wrapped to the box width.
func (p *Printer) PrintCoverLetter(letter string) {
	paragraphs := strings.Split(strings.TrimSpace(letter), "\n")
	wrapped := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		wrapped = append(wrapped, wrap(para, boxWidth-4))
	}
	p.printBox("Cover Letter", strings.Join(wrapped, "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n" + title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
