package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focusdeck/internal/modules/todo/domain"
	todoout "focusdeck/internal/modules/todo/port/out"
	apperrors "focusdeck/internal/platform/errors"
	"focusdeck/internal/platform/tx"
)

const timeLayout = time.RFC3339

// executor is satisfied by both *sql.DB and *sql.Tx; every statement runs
// against the transaction carried in ctx when one is present.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLiteTodoStore struct {
	db *sql.DB
}

func NewSQLiteTodoStore(db *sql.DB) (todoout.TodoStore, error) {
	store := &SQLiteTodoStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteTodoStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS todos (
  owner_id          TEXT NOT NULL,
  id                TEXT NOT NULL,
  content           TEXT NOT NULL,
  completed         INTEGER NOT NULL DEFAULT 0,
  recorded_in_stats INTEGER NOT NULL DEFAULT 0,
  position          INTEGER NOT NULL,
  created_at        TEXT NOT NULL,
  updated_at        TEXT NOT NULL,
  PRIMARY KEY(owner_id, id)
);

CREATE INDEX IF NOT EXISTS idx_todos_owner_position ON todos(owner_id, position);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (s *SQLiteTodoStore) exec(ctx context.Context) executor {
	if dbTx, ok := tx.From(ctx); ok {
		return dbTx
	}
	return s.db
}

func (s *SQLiteTodoStore) List(ctx context.Context, owner string) ([]domain.Todo, error) {
	const query = `
SELECT owner_id, id, content, completed, recorded_in_stats, position, created_at, updated_at
FROM todos WHERE owner_id = ? ORDER BY position`
	rows, err := s.exec(ctx).QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func (s *SQLiteTodoStore) Get(ctx context.Context, owner, id string) (domain.Todo, error) {
	const query = `
SELECT owner_id, id, content, completed, recorded_in_stats, position, created_at, updated_at
FROM todos WHERE owner_id = ? AND id = ?`
	todo, err := scanTodo(s.exec(ctx).QueryRowContext(ctx, query, owner, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Todo{}, apperrors.ErrNotFound
		}
		return domain.Todo{}, fmt.Errorf("load todo: %w", err)
	}
	return todo, nil
}

func (s *SQLiteTodoStore) Insert(ctx context.Context, todo domain.Todo) error {
	const stmt = `
INSERT INTO todos (owner_id, id, content, completed, recorded_in_stats, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx).ExecContext(ctx, stmt,
		todo.OwnerID,
		todo.ID,
		todo.Text,
		boolToInt(todo.Completed),
		boolToInt(todo.RecordedInStats),
		todo.Position,
		todo.CreatedAt.UTC().Format(timeLayout),
		todo.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (s *SQLiteTodoStore) Update(ctx context.Context, todo domain.Todo) error {
	const stmt = `
UPDATE todos SET content = ?, completed = ?, recorded_in_stats = ?, updated_at = ?
WHERE owner_id = ? AND id = ?`
	res, err := s.exec(ctx).ExecContext(ctx, stmt,
		todo.Text,
		boolToInt(todo.Completed),
		boolToInt(todo.RecordedInStats),
		todo.UpdatedAt.UTC().Format(timeLayout),
		todo.OwnerID,
		todo.ID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteTodoStore) Delete(ctx context.Context, owner, id string) error {
	res, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM todos WHERE owner_id = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteTodoStore) DeleteAll(ctx context.Context, owner string) error {
	if _, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM todos WHERE owner_id = ?`, owner); err != nil {
		return fmt.Errorf("delete todos: %w", err)
	}
	return nil
}

// Reindex closes position gaps by ranking each row on the count of rows
// ordered before it, which yields exactly 0..N-1.
func (s *SQLiteTodoStore) Reindex(ctx context.Context, owner string) error {
	const stmt = `
UPDATE todos SET position = (
  SELECT COUNT(*) FROM todos ranked
  WHERE ranked.owner_id = todos.owner_id AND ranked.position < todos.position
) WHERE owner_id = ?`
	if _, err := s.exec(ctx).ExecContext(ctx, stmt, owner); err != nil {
		return fmt.Errorf("reindex todos: %w", err)
	}
	return nil
}

func scanTodo(scan func(...any) error) (domain.Todo, error) {
	var todo domain.Todo
	var completed, recorded int
	var createdAt, updatedAt string
	if err := scan(&todo.OwnerID, &todo.ID, &todo.Text, &completed, &recorded, &todo.Position, &createdAt, &updatedAt); err != nil {
		return domain.Todo{}, err
	}
	var err error
	if todo.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Todo{}, fmt.Errorf("parse created_at: %w", err)
	}
	if todo.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return domain.Todo{}, fmt.Errorf("parse updated_at: %w", err)
	}
	todo.Completed = completed != 0
	todo.RecordedInStats = recorded != 0
	return todo, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
