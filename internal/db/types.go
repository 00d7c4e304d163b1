package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-assistant/internal/types"
)

// DefaultHistoryLimit is used when ListJobApplications is called without a positive limit.
const DefaultHistoryLimit = 50

// Template is a stored cover-letter or résumé template.
type Template struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobApplication is a saved pipeline result.
type JobApplication struct {
	ID                   uuid.UUID      `json:"id"`
	URL                  string         `json:"url"`
	CompanyName          string         `json:"company_name"`
	PositionTitle        string         `json:"position_title"`
	JobDescription       string         `json:"job_description"`
	ExtractedInfo        *types.JobInfo `json:"extracted_info"`
	GeneratedCoverLetter string         `json:"generated_cover_letter"`
	SessionID            string         `json:"session_id,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}

// JobApplicationInput is the data needed to save a job application.
type JobApplicationInput struct {
	URL                  string
	JobDescription       string
	ExtractedInfo        *types.JobInfo
	GeneratedCoverLetter string
	SessionID            string
}

// Session tracks an anonymous client's activity.
type Session struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// decodeExtractedInfo tolerates rows written by older clients: unreadable JSON becomes an empty record.
func decodeExtractedInfo(raw []byte) *types.JobInfo {
	info := &types.JobInfo{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, info); err != nil {
			info = &types.JobInfo{}
		}
	}
	info.Normalize()
	return info
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
