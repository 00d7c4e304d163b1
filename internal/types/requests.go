package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Template types
const (
	TemplateTypeResume      = "resume"
	TemplateTypeCoverLetter = "cover_letter"
)

// validate is shared; validator.Validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ScrapeRequest asks for a single job posting to be scraped.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required"`
}

// AnalyzeRequest asks for structured info to be extracted from job text.
type AnalyzeRequest struct {
	JobText string `json:"job_text" validate:"required"`
	URL     string `json:"url,omitempty"`
}

// CoverLetterRequest asks for a personalized cover letter.
// Either Template or TemplateID must be set.
type CoverLetterRequest struct {
	Template   string      `json:"template,omitempty" validate:"required_without=TemplateID"`
	TemplateID string      `json:"template_id,omitempty" validate:"omitempty,uuid"`
	JobInfo    JobInfo     `json:"job_info"`
	Resume     *ResumeData `json:"resume,omitempty"`
}

// ProcessJobRequest runs the whole pipeline for a URL.
type ProcessJobRequest struct {
	URL        string      `json:"url" validate:"required"`
	TemplateID string      `json:"template_id,omitempty" validate:"omitempty,uuid"`
	ResumeID   string      `json:"resume_id,omitempty" validate:"omitempty,uuid"`
	Resume     *ResumeData `json:"resume,omitempty"`
	SessionID  string      `json:"session_id,omitempty"`
}

// TemplateRequest creates or updates a stored template.
type TemplateRequest struct {
	Type    string `json:"type" validate:"omitempty,oneof=resume cover_letter"`
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Content string `json:"content" validate:"required"`
}

// Validate validates the ScrapeRequest using the validator.
func (r *ScrapeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CoverLetterRequest using the validator.
func (r *CoverLetterRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ProcessJobRequest using the validator.
func (r *ProcessJobRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the TemplateRequest using the validator.
func (r *TemplateRequest) Validate() error {
	return validate.Struct(r)
}
