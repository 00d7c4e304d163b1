// Package ingestion turns job-posting URLs and pasted text into cleaned plain text.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/types"
)

// ErrInvalidURL is reported when a URL has no scheme or host.
var ErrInvalidURL = errors.New("Invalid URL format") //nolint:staticcheck // surfaced verbatim to clients

// IsValidURL reports whether raw parses with both a scheme and a host.
func IsValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// Options configures a Scraper.
type Options struct {
	Fetch *fetch.Options
	// UseBrowser re-renders pages whose HTTP content is too short with headless Chrome.
	UseBrowser     bool
	BrowserTimeout time.Duration
	Verbose        bool
}

// Scraper fetches job postings and extracts their description text.
type Scraper struct {
	opts Options
}

// NewScraper returns a Scraper. A nil opts uses the fetch defaults.
func NewScraper(opts *Options) *Scraper {
	s := &Scraper{}
	if opts != nil {
		s.opts = *opts
	}
	if s.opts.Fetch == nil {
		s.opts.Fetch = fetch.DefaultOptions()
	}
	if s.opts.BrowserTimeout <= 0 {
		s.opts.BrowserTimeout = fetch.DefaultBrowserTimeout
	}
	return s
}

// Scrape fetches urlStr and returns the cleaned posting. It never returns nil
// and never panics; failures are reported through JobPosting.Error.
func (s *Scraper) Scrape(ctx context.Context, urlStr string) (posting *types.JobPosting) {
	if !IsValidURL(urlStr) {
		return types.FailedPosting(urlStr, ErrInvalidURL.Error())
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ingestion] recovered while scraping %s: %v", urlStr, r)
			posting = types.FailedPosting(urlStr, fmt.Sprintf("Scraping error: %v", r))
		}
	}()

	if s.opts.Verbose {
		board := "generic"
		if b := DetectBoard(urlStr); b != nil {
			board = b.Name
		}
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected board: %s", board)
	}

	result, err := fetch.URL(ctx, urlStr, s.opts.Fetch)
	if err != nil {
		return types.FailedPosting(urlStr, fmt.Sprintf("Network error: %v", err))
	}
	if s.opts.Verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	content, title, err := s.extract(result.HTML, urlStr)
	if err != nil {
		return types.FailedPosting(urlStr, fmt.Sprintf("Scraping error: %v", err))
	}

	if s.opts.UseBrowser && fetch.ShouldUseBrowser(content) {
		if s.opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(content), fetch.MinContentLength)
		}
		rendered, browserErr := fetch.WithBrowser(ctx, urlStr, s.opts.BrowserTimeout, s.opts.Verbose)
		if browserErr != nil {
			if s.opts.Verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		} else if bContent, bTitle, bErr := s.extract(rendered, urlStr); bErr == nil && len(bContent) > len(content) {
			content, title = bContent, bTitle
		}
	}

	if s.opts.Verbose {
		log.Printf("[VERBOSE] Cleaned text: %d chars", len(content))
	}

	return &types.JobPosting{
		Success: true,
		Content: content,
		Title:   title,
		URL:     urlStr,
	}
}

func (s *Scraper) extract(rawHTML, urlStr string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	host := ""
	if parsed, err := url.Parse(urlStr); err == nil {
		host = parsed.Host
	}

	title := ExtractTitle(doc)
	content := CleanText(ExtractContent(doc, host))
	return content, title, nil
}
