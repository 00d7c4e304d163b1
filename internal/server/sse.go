package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Event names on /api/process-job/stream.
const (
	EventStep     = "step"
	EventResult   = "result"
	EventError    = "error"
	EventComplete = "complete"
)

// Terminal run statuses carried by the complete event.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

var errStreamingUnsupported = errors.New("streaming not supported")

type streamError struct {
	Error string `json:"error"`
	RunID string `json:"run_id,omitempty"`
}

type streamComplete struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// progressStream writes pipeline progress as numbered Server-Sent Events.
type progressStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

// openProgressStream sets the event-stream headers. It fails when w cannot flush.
func openProgressStream(w http.ResponseWriter) (*progressStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &progressStream{w: w, flusher: flusher}, nil
}

// send writes one event; ids start at 1.
func (p *progressStream) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}
	p.seq++
	if _, err := fmt.Fprintf(p.w, "id: %d\nevent: %s\ndata: %s\n\n", p.seq, event, data); err != nil {
		return err
	}
	p.flusher.Flush()
	return nil
}

// fail reports err and closes the run as failed.
func (p *progressStream) fail(runID string, err error) error {
	if sendErr := p.send(EventError, streamError{Error: err.Error(), RunID: runID}); sendErr != nil {
		return sendErr
	}
	return p.send(EventComplete, streamComplete{RunID: runID, Status: StatusFailed})
}

// finish closes the run as completed.
func (p *progressStream) finish(runID string) error {
	return p.send(EventComplete, streamComplete{RunID: runID, Status: StatusCompleted})
}
