package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/job-assistant/internal/types"
)

const templateColumns = `id, type, name, content, created_at, updated_at`

// ListTemplates returns templates newest first, optionally filtered by type.
func (db *DB) ListTemplates(ctx context.Context, templateType string) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates`
	var args []any
	if templateType != "" {
		query += ` WHERE type = $1`
		args = append(args, templateType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := []Template{}
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Type, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns the template with id, or nil if it does not exist.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error) {
	var t Template
	err := db.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Type, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &t, nil
}

// CreateTemplate stores a new template. An empty type means cover_letter.
func (db *DB) CreateTemplate(ctx context.Context, templateType, name, content string) (*Template, error) {
	if templateType == "" {
		templateType = types.TemplateTypeCoverLetter
	}

	t := Template{ID: uuid.New(), Type: templateType, Name: name, Content: content}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO templates (id, type, name, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		t.ID, t.Type, t.Name, t.Content,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return &t, nil
}

// UpdateTemplate changes a template's name and content. It returns nil when
// no template has id.
func (db *DB) UpdateTemplate(ctx context.Context, id uuid.UUID, name, content string) (*Template, error) {
	var t Template
	err := db.pool.QueryRow(ctx,
		`UPDATE templates SET name = $2, content = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+templateColumns,
		id, name, content,
	).Scan(&t.ID, &t.Type, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return &t, nil
}

// DeleteTemplate removes a template and reports whether it existed.
func (db *DB) DeleteTemplate(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *DB) seedDefaultTemplates(ctx context.Context) error {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM templates`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count templates: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := db.CreateTemplate(ctx, types.TemplateTypeCoverLetter, DefaultCoverLetterName, DefaultCoverLetterTemplate); err != nil {
		return err
	}
	if _, err := db.CreateTemplate(ctx, types.TemplateTypeResume, DefaultResumeName, DefaultResumeTemplate); err != nil {
		return err
	}
	return nil
}
