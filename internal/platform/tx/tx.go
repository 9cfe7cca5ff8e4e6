package tx

import (
	"context"
	"database/sql"
	"fmt"
)

// Manager wraps transactional boundaries for multi-statement store
// operations. Everything run inside fn commits or rolls back as one unit.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager is for stores that are atomic by construction (in-memory
// fakes in tests).
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type ctxKey struct{}

// DBManager opens one database transaction per Within call and carries it
// through the context for adapters to pick up via From.
type DBManager struct {
	DB *sql.DB
}

func (m DBManager) Within(ctx context.Context, fn func(context.Context) error) error {
	dbTx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(context.WithValue(ctx, ctxKey{}, dbTx)); err != nil {
		_ = dbTx.Rollback()
		return err
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// From returns the transaction attached to ctx by DBManager.Within, if any.
func From(ctx context.Context) (*sql.Tx, bool) {
	dbTx, ok := ctx.Value(ctxKey{}).(*sql.Tx)
	return dbTx, ok
}
