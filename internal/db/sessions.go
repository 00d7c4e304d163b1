package db

import (
	"context"
	"fmt"
	"time"
)

// CreateSession inserts a session, or refreshes its activity if it already exists.
func (db *DB) CreateSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := db.pool.QueryRow(ctx,
		`INSERT INTO sessions (id) VALUES ($1)
		 ON CONFLICT (id) DO UPDATE SET last_activity = NOW()
		 RETURNING id, created_at, last_activity`,
		id,
	).Scan(&s.ID, &s.CreatedAt, &s.LastActivity)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &s, nil
}

// TouchSession records activity on a session. Unknown sessions are ignored.
func (db *DB) TouchSession(ctx context.Context, id string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE sessions SET last_activity = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update session activity: %w", err)
	}
	return nil
}

// PruneSessions deletes sessions idle for longer than maxIdle and returns how many were removed.
// Job history rows keep their session_id.
func (db *DB) PruneSessions(ctx context.Context, maxIdle time.Duration) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM sessions WHERE last_activity < $1`,
		time.Now().Add(-maxIdle),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
