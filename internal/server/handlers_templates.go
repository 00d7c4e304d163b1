package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-assistant/internal/types"
)

// handleListTemplates lists templates, optionally filtered by ?type=.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errResponse(w, ErrStoreUnavailable)
		return
	}

	templateType := r.URL.Query().Get("type")
	if templateType != "" && templateType != types.TemplateTypeResume && templateType != types.TemplateTypeCoverLetter {
		s.errResponse(w, &ErrValidation{Field: "type", Message: "must be one of resume cover_letter"})
		return
	}

	templates, err := s.store.ListTemplates(r.Context(), templateType)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.templateID(w, r)
	if !ok {
		return
	}

	tmpl, err := s.store.GetTemplate(r.Context(), id)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if tmpl == nil {
		s.errResponse(w, &ErrNotFound{Resource: "template", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, tmpl)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errResponse(w, ErrStoreUnavailable)
		return
	}

	var req types.TemplateRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}

	tmpl, err := s.store.CreateTemplate(r.Context(), req.Type, req.Name, req.Content)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, tmpl)
}

// handleUpdateTemplate replaces name and content. The type is fixed at creation.
func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.templateID(w, r)
	if !ok {
		return
	}

	var req types.TemplateRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}

	tmpl, err := s.store.UpdateTemplate(r.Context(), id, req.Name, req.Content)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if tmpl == nil {
		s.errResponse(w, &ErrNotFound{Resource: "template", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, tmpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.templateID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteTemplate(r.Context(), id)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if !deleted {
		s.errResponse(w, &ErrNotFound{Resource: "template", ID: id.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// templateID parses the {id} path value and checks the store is configured.
// It writes the error response itself.
func (s *Server) templateID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.store == nil {
		s.errResponse(w, ErrStoreUnavailable)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}
