package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/job-assistant/internal/db"
)

// maxHistoryLimit caps ?limit= on /api/jobs.
const maxHistoryLimit = 500

// SessionRequest optionally names the session to create or refresh.
type SessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// handleListJobs returns saved applications, newest first.
// Query: session_id (optional), limit (default db.DefaultHistoryLimit).
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errResponse(w, ErrStoreUnavailable)
		return
	}

	query := r.URL.Query()
	limit := db.DefaultHistoryLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			s.errResponse(w, &ErrValidation{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(maxHistoryLimit)})
			return
		}
		limit = n
	}

	jobs, err := s.store.ListJobApplications(r.Context(), query.Get("session_id"), limit)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if jobs == nil {
		jobs = []db.JobApplication{}
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleCreateSession creates a session, or refreshes it when session_id is given.
// An empty body creates a new random session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errResponse(w, ErrStoreUnavailable)
		return
	}

	var req SessionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	session, err := s.store.CreateSession(r.Context(), req.SessionID)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, session)
}
