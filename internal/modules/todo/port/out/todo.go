package out

import (
	"context"

	"focusdeck/internal/modules/todo/domain"
)

// TodoStore exposes single-statement primitives. Multi-step sequences
// (replace-all, delete-plus-reindex) are composed by the service under one
// tx.Manager.Within call, so the position invariant is never observable
// mid-flight.
type TodoStore interface {
	List(ctx context.Context, owner string) ([]domain.Todo, error)
	Get(ctx context.Context, owner, id string) (domain.Todo, error)
	Insert(ctx context.Context, todo domain.Todo) error
	Update(ctx context.Context, todo domain.Todo) error
	Delete(ctx context.Context, owner, id string) error
	DeleteAll(ctx context.Context, owner string) error
	// Reindex reassigns positions 0,1,2,… over the owner's remaining todos
	// ordered by their current position.
	Reindex(ctx context.Context, owner string) error
}
