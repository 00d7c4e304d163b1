// Package types provides type definitions for structured data used throughout the job assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobPosting is the result of scraping a single job-posting URL.
// A failed scrape always carries an empty Content.
type JobPosting struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Content string `json:"content"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// FailedPosting builds the failure record for url with the given message.
func FailedPosting(url, message string) *JobPosting {
	return &JobPosting{
		Success: false,
		Error:   message,
		URL:     url,
	}
}
