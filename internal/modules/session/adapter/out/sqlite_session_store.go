package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focusdeck/internal/modules/session/domain"
	sessionout "focusdeck/internal/modules/session/port/out"
	apperrors "focusdeck/internal/platform/errors"
)

const timeLayout = time.RFC3339

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (sessionout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id         TEXT PRIMARY KEY,
  owner_id   TEXT NOT NULL,
  label      TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at   TEXT NOT NULL,
  completed  INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_owner_started ON sessions(owner_id, started_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, owner_id, label, started_at, ended_at, completed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.OwnerID,
		session.Label,
		session.StartedAt.UTC().Format(timeLayout),
		session.EndedAt.UTC().Format(timeLayout),
		boolToInt(session.Completed),
		session.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) GetByID(ctx context.Context, owner, sessionID string) (domain.Session, error) {
	const query = `
SELECT id, owner_id, label, started_at, ended_at, completed, created_at
FROM sessions WHERE owner_id = ? AND id = ?`
	row := s.db.QueryRowContext(ctx, query, owner, sessionID)
	session, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, apperrors.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

func (s *SQLiteSessionStore) Update(ctx context.Context, session domain.Session) error {
	const stmt = `
UPDATE sessions SET label = ?, started_at = ?, ended_at = ?, completed = ?
WHERE owner_id = ? AND id = ?`
	res, err := s.db.ExecContext(ctx, stmt,
		session.Label,
		session.StartedAt.UTC().Format(timeLayout),
		session.EndedAt.UTC().Format(timeLayout),
		boolToInt(session.Completed),
		session.OwnerID,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, owner, sessionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE owner_id = ? AND id = ?`, owner, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteSessionStore) List(ctx context.Context, owner string) ([]domain.Session, error) {
	const query = `
SELECT id, owner_id, label, started_at, ended_at, completed, created_at
FROM sessions WHERE owner_id = ? ORDER BY started_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func scanSession(scan func(...any) error) (domain.Session, error) {
	var session domain.Session
	var startedAt, endedAt, createdAt string
	var completed int
	if err := scan(&session.ID, &session.OwnerID, &session.Label, &startedAt, &endedAt, &completed, &createdAt); err != nil {
		return domain.Session{}, err
	}
	var err error
	if session.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return domain.Session{}, fmt.Errorf("parse started_at: %w", err)
	}
	if session.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
		return domain.Session{}, fmt.Errorf("parse ended_at: %w", err)
	}
	if session.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Session{}, fmt.Errorf("parse created_at: %w", err)
	}
	session.Completed = completed != 0
	return session, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
