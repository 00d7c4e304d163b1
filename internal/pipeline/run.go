// Package pipeline runs scrape, analysis and cover-letter generation for a job URL.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/job-assistant/internal/db"
	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/jonathan/job-assistant/internal/types"
)

// Step names reported in progress events.
const (
	StepScrape      = "scrape"
	StepAnalyze     = "analyze"
	StepCoverLetter = "cover_letter"
	StepSave        = "save"
)

// Categories group steps in progress events.
const (
	CategoryIngestion   = "ingestion"
	CategoryAnalysis    = "analysis"
	CategoryGeneration  = "generation"
	CategoryPersistence = "persistence"
)

// ErrScrapeFailed is returned when the posting could not be scraped; the
// Result still carries the failed posting.
var ErrScrapeFailed = errors.New("scrape failed")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Scraper fetches a job posting.
type Scraper interface {
	Scrape(ctx context.Context, url string) *types.JobPosting
}

// Analyzer extracts structured info from posting text.
type Analyzer interface {
	Analyze(ctx context.Context, jobText, sourceURL string) *types.JobInfo
}

// Personalizer writes a cover letter.
type Personalizer interface {
	Personalize(ctx context.Context, template string, info *types.JobInfo, resume *types.ResumeData) string
}

// Cache stores successful scrape results.
type Cache interface {
	Get(ctx context.Context, url string) (*types.JobPosting, bool, error)
	Set(ctx context.Context, posting *types.JobPosting) error
	Delete(ctx context.Context, url string) error
}

// Store persists job applications and session activity.
type Store interface {
	SaveJobApplication(ctx context.Context, input *db.JobApplicationInput) (uuid.UUID, error)
	TouchSession(ctx context.Context, id string) error
}

// Runner wires the pipeline stages. Cache and Store are optional.
type Runner struct {
	Scraper      Scraper
	Analyzer     Analyzer
	Personalizer Personalizer
	Cache        Cache
	Store        Store
	// Refresh evicts cached postings and always fetches.
	Refresh bool
	Verbose bool
}

// Request is one pipeline invocation.
type Request struct {
	URL string
	// Template is the cover-letter template; empty uses db.DefaultCoverLetterTemplate.
	Template   string
	Resume     *types.ResumeData
	SessionID  string
	OnProgress ProgressCallback
}

// Result holds every stage's output.
type Result struct {
	RunID         string            `json:"run_id"`
	Posting       *types.JobPosting `json:"job_posting"`
	JobInfo       *types.JobInfo    `json:"job_info,omitempty"`
	CoverLetter   string            `json:"cover_letter,omitempty"`
	ApplicationID *uuid.UUID        `json:"application_id,omitempty"`
	Cached        bool              `json:"cached"`
}

// emitProgress calls the progress callback if configured
func emitProgress(req *Request, runID, step, category, message string, content any) {
	if req.OnProgress != nil {
		req.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID,
			Content:  content,
		})
	}
}

// Run executes scrape, analyze and personalize strictly in order. A failed
// scrape stops the run and returns the failed posting with ErrScrapeFailed.
// Cache and store errors are logged and never fail the run.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	var printer *observability.Printer
	if r.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	posting, cached := r.Scrape(ctx, req.URL)
	result.Posting = posting
	result.Cached = cached
	if printer != nil {
		printer.PrintPosting(posting)
	}
	if !posting.Success {
		emitProgress(&req, result.RunID, StepScrape, CategoryIngestion, "Scrape failed: "+posting.Error, posting)
		return result, fmt.Errorf("%w: %s", ErrScrapeFailed, posting.Error)
	}
	emitProgress(&req, result.RunID, StepScrape, CategoryIngestion,
		fmt.Sprintf("Scraped %q (%d chars)", posting.Title, len(posting.Content)), posting)

	result.JobInfo = r.Analyzer.Analyze(ctx, posting.Content, posting.URL)
	if printer != nil {
		printer.PrintJobInfo(result.JobInfo)
	}
	emitProgress(&req, result.RunID, StepAnalyze, CategoryAnalysis,
		fmt.Sprintf("Analyzed job: %s at %s", result.JobInfo.PositionTitle, result.JobInfo.CompanyName), result.JobInfo)

	template := req.Template
	if template == "" {
		template = db.DefaultCoverLetterTemplate
	}
	resume := req.Resume
	if resume == nil {
		resume = &types.ResumeData{}
	}
	result.CoverLetter = r.Personalizer.Personalize(ctx, template, result.JobInfo, resume)
	if printer != nil {
		printer.PrintCoverLetter(result.CoverLetter)
	}
	emitProgress(&req, result.RunID, StepCoverLetter, CategoryGeneration, "Generated cover letter", result.CoverLetter)

	if r.Store != nil {
		id, err := r.Store.SaveJobApplication(ctx, &db.JobApplicationInput{
			URL:                  posting.URL,
			JobDescription:       posting.Content,
			ExtractedInfo:        result.JobInfo,
			GeneratedCoverLetter: result.CoverLetter,
			SessionID:            req.SessionID,
		})
		if err != nil {
			log.Printf("[pipeline] failed to save job application for %s: %v", posting.URL, err)
		} else {
			result.ApplicationID = &id
			emitProgress(&req, result.RunID, StepSave, CategoryPersistence, "Saved job application", id.String())
		}

		if req.SessionID != "" {
			if err := r.Store.TouchSession(ctx, req.SessionID); err != nil {
				log.Printf("[pipeline] failed to update session %s: %v", req.SessionID, err)
			}
		}
	}

	return result, nil
}

// Scrape consults the cache before fetching and stores fresh successes.
// The bool reports a cache hit.
func (r *Runner) Scrape(ctx context.Context, url string) (*types.JobPosting, bool) {
	if r.Cache != nil && r.Refresh {
		if err := r.Cache.Delete(ctx, url); err != nil {
			log.Printf("[pipeline] cache evict failed for %s: %v", url, err)
		}
	} else if r.Cache != nil {
		posting, ok, err := r.Cache.Get(ctx, url)
		if err != nil {
			log.Printf("[pipeline] cache lookup failed for %s: %v", url, err)
		} else if ok {
			if r.Verbose {
				log.Printf("[VERBOSE] Cache hit for %s", url)
			}
			return posting, true
		}
	}

	posting := r.Scraper.Scrape(ctx, url)
	if posting.Success && r.Cache != nil {
		if err := r.Cache.Set(ctx, posting); err != nil {
			log.Printf("[pipeline] cache store failed for %s: %v", url, err)
		}
	}
	return posting, false
}
