package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/examsim/internal/session"
)

// SessionRepo reads and writes the two session records: the singleton
// current-session row and the append-only completed-sessions log. It
// implements the engine's Repo interface.
type SessionRepo struct {
	db *sql.DB
}

// SaveActive upserts the serialized active session into the singleton row.
func (r *SessionRepo) SaveActive(ctx context.Context, s *session.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO current_session (id, data, updated_at)
		VALUES (1, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		string(raw))
	if err != nil {
		return fmt.Errorf("save active session: %w", err)
	}
	return nil
}

// LoadActive returns the stored active session, or (nil, nil) when none
// exists. A row that fails to decode or validate is corrupt: it is deleted
// and reads as absent rather than failing restore.
func (r *SessionRepo) LoadActive(ctx context.Context) (*session.Session, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM current_session WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		_ = r.ClearActive(ctx)
		return nil, nil
	}
	if err := s.Validate(); err != nil {
		_ = r.ClearActive(ctx)
		return nil, nil
	}
	return &s, nil
}

// ClearActive removes the current-session row, if any.
func (r *SessionRepo) ClearActive(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM current_session WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}

// AppendCompleted adds a completed session to the history log.
func (r *SessionRepo) AppendCompleted(ctx context.Context, cs *session.CompletedSession) error {
	raw, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("marshal completed session: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO completed_sessions (session_id, data)
		VALUES (?, ?)`,
		cs.ID, string(raw))
	if err != nil {
		return fmt.Errorf("append completed session: %w", err)
	}
	return nil
}

// ListCompleted returns the history log in append order (oldest first).
// Corrupt entries are skipped.
func (r *SessionRepo) ListCompleted(ctx context.Context) ([]*session.CompletedSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM completed_sessions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}
	defer rows.Close()

	var out []*session.CompletedSession
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan completed session: %w", err)
		}
		var cs session.CompletedSession
		if err := json.Unmarshal([]byte(raw), &cs); err != nil {
			continue
		}
		out = append(out, &cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed sessions: %w", err)
	}
	return out, nil
}

// CountCompleted returns the number of history entries.
func (r *SessionRepo) CountCompleted(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM completed_sessions`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count completed sessions: %w", err)
	}
	return n, nil
}

// Reset drops all stored data: the active session and the entire history.
func (r *SessionRepo) Reset(ctx context.Context) error {
	if err := r.ClearActive(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM completed_sessions`); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}
