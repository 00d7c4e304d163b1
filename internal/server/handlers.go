package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-assistant/internal/ingestion"
	"github.com/jonathan/job-assistant/internal/pipeline"
	"github.com/jonathan/job-assistant/internal/schemas"
	"github.com/jonathan/job-assistant/internal/types"
)

// maxBodyBytes bounds request bodies; résumés and templates are small.
const maxBodyBytes = 1 << 20

type validatable interface {
	Validate() error
}

// CoverLetterResponse is returned by /api/cover-letter.
type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
}

// ProcessJobError is returned when the posting could not be scraped.
type ProcessJobError struct {
	Error      string            `json:"error"`
	RunID      string            `json:"run_id"`
	JobPosting *types.JobPosting `json:"job_posting"`
}

// decodeRequest reads a JSON body into req and validates it.
func decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// handleScrape scrapes one posting. Failures still return the posting record.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req types.ScrapeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}

	posting, _ := s.runner.Scrape(r.Context(), req.URL)
	switch {
	case posting.Success:
		s.jsonResponse(w, http.StatusOK, posting)
	case !ingestion.IsValidURL(req.URL):
		s.jsonResponse(w, http.StatusBadRequest, posting)
	default:
		s.jsonResponse(w, http.StatusBadGateway, posting)
	}
}

// handleAnalyze extracts structured info from posting text. It always succeeds
// once the request is valid.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.analyzer.Analyze(r.Context(), req.JobText, req.URL))
}

// handleCoverLetter personalizes an inline or stored template.
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req types.CoverLetterRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}

	template := req.Template
	if template == "" {
		content, err := s.templateContent(r.Context(), req.TemplateID, types.TemplateTypeCoverLetter)
		if err != nil {
			s.errResponse(w, err)
			return
		}
		template = content
	}

	resume := req.Resume
	if resume == nil {
		resume = &types.ResumeData{}
	}
	info := req.JobInfo
	info.Normalize()

	letter := s.personalizer.Personalize(r.Context(), template, &info, resume)
	s.jsonResponse(w, http.StatusOK, CoverLetterResponse{CoverLetter: letter})
}

// handleProcessJob runs scrape, analysis and personalization and returns every stage.
func (s *Server) handleProcessJob(w http.ResponseWriter, r *http.Request) {
	req, err := s.processRequest(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	result, err := s.runner.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, pipeline.ErrScrapeFailed) {
			s.jsonResponse(w, HTTPStatus(err), ProcessJobError{
				Error:      result.Posting.Error,
				RunID:      result.RunID,
				JobPosting: result.Posting,
			})
			return
		}
		s.errResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleProcessJobStream runs the pipeline and streams progress via SSE.
// Validation errors are plain JSON responses; once streaming starts every
// outcome is an event.
func (s *Server) handleProcessJobStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.processRequest(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	stream, err := openProgressStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	req.OnProgress = func(event pipeline.ProgressEvent) {
		if err := stream.send(EventStep, event); err != nil {
			log.Printf("[server] error writing SSE event: %v", err)
		}
	}

	result, err := s.runner.Run(r.Context(), req)
	if err != nil {
		if err := stream.fail(result.RunID, err); err != nil {
			log.Printf("[server] error writing SSE failure: %v", err)
		}
		return
	}

	if err := stream.send(EventResult, result); err != nil {
		log.Printf("[server] error writing SSE result: %v", err)
		return
	}
	if err := stream.finish(result.RunID); err != nil {
		log.Printf("[server] error writing SSE completion: %v", err)
	}
}

// processRequest decodes a process-job body and resolves stored templates.
func (s *Server) processRequest(w http.ResponseWriter, r *http.Request) (pipeline.Request, error) {
	var body types.ProcessJobRequest
	if err := decodeRequest(w, r, &body); err != nil {
		return pipeline.Request{}, err
	}

	req := pipeline.Request{
		URL:       body.URL,
		Resume:    body.Resume,
		SessionID: body.SessionID,
	}

	if body.TemplateID != "" {
		content, err := s.templateContent(r.Context(), body.TemplateID, types.TemplateTypeCoverLetter)
		if err != nil {
			return req, err
		}
		req.Template = content
	}

	if req.Resume == nil && body.ResumeID != "" {
		content, err := s.templateContent(r.Context(), body.ResumeID, types.TemplateTypeResume)
		if err != nil {
			return req, err
		}
		resume, err := schemas.ParseResume([]byte(content))
		if err != nil {
			return req, err
		}
		req.Resume = resume
	}

	return req, nil
}

// templateContent loads a stored template and checks its type.
func (s *Server) templateContent(ctx context.Context, rawID, templateType string) (string, error) {
	if s.store == nil {
		return "", ErrStoreUnavailable
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return "", &ErrValidation{Field: "id", Message: "must be a UUID"}
	}

	tmpl, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return "", err
	}
	if tmpl == nil || tmpl.Type != templateType {
		return "", &ErrNotFound{Resource: templateType + " template", ID: rawID}
	}
	return tmpl.Content, nil
}
