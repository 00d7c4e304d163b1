package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// SaveJobApplication stores a pipeline result and returns its ID.
func (db *DB) SaveJobApplication(ctx context.Context, input *JobApplicationInput) (uuid.UUID, error) {
	var company, position string
	var extracted []byte
	if input.ExtractedInfo != nil {
		company = input.ExtractedInfo.CompanyName
		position = input.ExtractedInfo.PositionTitle

		var err error
		extracted, err = json.Marshal(input.ExtractedInfo)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal extracted info: %w", err)
		}
	}

	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO jobs (id, url, company_name, position_title, job_description,
		                   extracted_info, generated_cover_letter, session_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, input.URL, nullable(company), nullable(position), input.JobDescription,
		extracted, input.GeneratedCoverLetter, nullable(input.SessionID),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job application: %w", err)
	}
	return id, nil
}

// ListJobApplications returns saved applications newest first. An empty
// sessionID lists every session; a non-positive limit uses DefaultHistoryLimit.
func (db *DB) ListJobApplications(ctx context.Context, sessionID string, limit int) ([]JobApplication, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `SELECT id, url, company_name, position_title, job_description,
	                 extracted_info, generated_cover_letter, session_id, created_at
	          FROM jobs`
	args := []any{limit}
	if sessionID != "" {
		query += ` WHERE session_id = $2`
		args = append(args, sessionID)
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	defer rows.Close()

	jobs := []JobApplication{}
	for rows.Next() {
		var (
			job                                             JobApplication
			company, position, description, letter, session *string
			extracted                                       []byte
		)
		if err := rows.Scan(&job.ID, &job.URL, &company, &position, &description,
			&extracted, &letter, &session, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job application: %w", err)
		}
		job.CompanyName = deref(company)
		job.PositionTitle = deref(position)
		job.JobDescription = deref(description)
		job.GeneratedCoverLetter = deref(letter)
		job.SessionID = deref(session)
		job.ExtractedInfo = decodeExtractedInfo(extracted)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	return jobs, nil
}
