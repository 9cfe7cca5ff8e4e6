package service

import (
	"context"
	"fmt"
	"strings"

	"focusdeck/internal/modules/todo/domain"
	todoout "focusdeck/internal/modules/todo/port/out"
	"focusdeck/internal/platform/clock"
	apperrors "focusdeck/internal/platform/errors"
	"focusdeck/internal/platform/tx"
)

type TodoService struct {
	clock clock.Clock
	store todoout.TodoStore
	txm   tx.Manager
}

func NewTodoService(clock clock.Clock, store todoout.TodoStore, txm tx.Manager) *TodoService {
	return &TodoService{clock: clock, store: store, txm: txm}
}

func (s *TodoService) List(ctx context.Context, owner string) ([]domain.Todo, error) {
	return s.store.List(ctx, owner)
}

// ReplaceAll swaps the owner's whole list in one transaction: delete
// everything, then insert the given items with position = array index. A
// failed insert rolls the store back to the pre-call state.
func (s *TodoService) ReplaceAll(ctx context.Context, owner string, items []domain.Todo) ([]domain.Todo, error) {
	seen := make(map[string]struct{}, len(items))
	for idx := range items {
		id := strings.TrimSpace(items[idx].ID)
		if id == "" {
			return nil, fmt.Errorf("%w: todo %d has no id", apperrors.ErrInvalidInput, idx)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate todo id %q", apperrors.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		items[idx].ID = id
	}

	now := s.clock.Now()
	saved := make([]domain.Todo, len(items))
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteAll(ctx, owner); err != nil {
			return err
		}
		for idx, item := range items {
			item.OwnerID = owner
			item.Position = idx
			item.CreatedAt = now
			item.UpdatedAt = now
			if err := s.store.Insert(ctx, item); err != nil {
				return err
			}
			saved[idx] = item
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *TodoService) Patch(ctx context.Context, owner, todoID string, patch domain.Patch) (domain.Todo, error) {
	todo, err := s.store.Get(ctx, owner, todoID)
	if err != nil {
		return domain.Todo{}, err
	}
	todo.Apply(patch)
	todo.UpdatedAt = s.clock.Now()
	if err := s.store.Update(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// Remove deletes one todo and closes the position gap it leaves, as a
// single transaction.
func (s *TodoService) Remove(ctx context.Context, owner, todoID string) error {
	return s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.store.Delete(ctx, owner, todoID); err != nil {
			return err
		}
		return s.store.Reindex(ctx, owner)
	})
}
