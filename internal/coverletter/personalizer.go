// Package coverletter personalizes cover-letter templates for a job.
package coverletter

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/prompts"
	"github.com/jonathan/job-assistant/internal/types"
)

// ErrNoClient is reported when personalization runs without a completion client.
var ErrNoClient = errors.New("no LLM client configured")

// Personalizer writes cover letters with a model, falling back to placeholder substitution.
type Personalizer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewPersonalizer returns a Personalizer. A nil client always uses FallbackLetter.
func NewPersonalizer(client llm.Client, tier llm.ModelTier) *Personalizer {
	if tier == "" {
		tier = llm.TierStandard
	}
	return &Personalizer{client: client, tier: tier}
}

// Personalize returns the model's trimmed letter, or FallbackLetter when the
// call fails or returns only whitespace. It never fails.
func (p *Personalizer) Personalize(ctx context.Context, template string, info *types.JobInfo, resume *types.ResumeData) string {
	letter, err := p.personalize(ctx, template, info, resume)
	if err != nil {
		log.Printf("[coverletter] using placeholder substitution: %v", err)
		return FallbackLetter(template, info)
	}
	return letter
}

func (p *Personalizer) personalize(ctx context.Context, template string, info *types.JobInfo, resume *types.ResumeData) (string, error) {
	if p.client == nil {
		return "", &APICallError{Message: "personalization unavailable", Cause: ErrNoClient}
	}

	text, err := p.client.GenerateContent(ctx, BuildPrompt(template, info, resume), p.tier)
	if err != nil {
		return "", &APICallError{Message: "failed to generate cover letter", Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &APICallError{Message: "empty cover letter from LLM"}
	}
	return text, nil
}

// BuildPrompt renders the personalization prompt with info and resume as indented JSON.
func BuildPrompt(template string, info *types.JobInfo, resume *types.ResumeData) string {
	tmpl := prompts.MustGet("cover_letter.json", "personalize-cover-letter")
	return prompts.Format(tmpl, map[string]string{
		"Template": template,
		"JobInfo":  indentJSON(info),
		"Resume":   indentJSON(resume),
	})
}

func indentJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
