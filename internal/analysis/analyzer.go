// Package analysis turns job-posting text into a structured JobInfo record.
// Analyze is total: any completion or decoding failure yields DefaultJobInfo.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/prompts"
	"github.com/jonathan/job-assistant/internal/types"
)

// ErrNoClient is reported when analysis runs without a completion client.
var ErrNoClient = errors.New("no LLM client configured")

// Analyzer reconciles model output into JobInfo records.
type Analyzer struct {
	client  llm.Client
	tier    llm.ModelTier
	verbose bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTier selects the model tier used for analysis.
func WithTier(tier llm.ModelTier) Option {
	return func(a *Analyzer) { a.tier = tier }
}

// WithVerbose enables [VERBOSE] logging of prompts and raw responses.
func WithVerbose(verbose bool) Option {
	return func(a *Analyzer) { a.verbose = verbose }
}

// NewAnalyzer returns an Analyzer. A nil client makes every call use the default record.
func NewAnalyzer(client llm.Client, opts ...Option) *Analyzer {
	a := &Analyzer{client: client, tier: llm.TierStandard}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze extracts structured job information from jobText. It never fails;
// errors are logged and replaced by DefaultJobInfo(jobText, sourceURL).
func (a *Analyzer) Analyze(ctx context.Context, jobText, sourceURL string) *types.JobInfo {
	info, err := a.analyze(ctx, jobText, sourceURL)
	if err != nil {
		log.Printf("[analysis] using default job info for %s: %v", sourceURL, err)
		return DefaultJobInfo(jobText, sourceURL)
	}
	return info
}

func (a *Analyzer) analyze(ctx context.Context, jobText, sourceURL string) (*types.JobInfo, error) {
	if a.client == nil {
		return nil, &APICallError{Message: "analysis unavailable", Cause: ErrNoClient}
	}

	prompt := BuildPrompt(jobText, sourceURL)
	if a.verbose {
		log.Printf("[VERBOSE] Analysis prompt: %d chars, model %s", len(prompt), a.client.GetModel(a.tier))
	}

	responseText, err := a.client.GenerateJSON(ctx, prompt, a.tier)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}
	if a.verbose {
		log.Printf("[VERBOSE] Analysis response: %d chars", len(responseText))
	}

	return ParseJobInfo(responseText)
}

// BuildPrompt renders the analysis prompt for jobText.
func BuildPrompt(jobText, sourceURL string) string {
	template := prompts.MustGet("analysis.json", "analyze-job-posting")
	return prompts.Format(template, map[string]string{
		"Structure": JobInfoSchema().RenderStructure(),
		"URL":       sourceURL,
		"Content":   jobText,
	})
}

// ParseJobInfo strips code fences, takes the greedy {...} span and decodes it.
// Missing keys are left empty and nil lists normalized; no other validation is applied.
func ParseJobInfo(responseText string) (*types.JobInfo, error) {
	candidate := llm.ExtractJSONObject(llm.CleanJSONBlock(responseText))
	if candidate == "" {
		return nil, &ParseError{Message: "no JSON object in response", Raw: responseText}
	}

	var info types.JobInfo
	if err := json.Unmarshal([]byte(candidate), &info); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Raw:     responseText,
			Cause:   err,
		}
	}
	info.Normalize()
	return &info, nil
}
