package service_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"focusdeck/internal/modules/todo/domain"
	"focusdeck/internal/modules/todo/service"
	apperrors "focusdeck/internal/platform/errors"
	"focusdeck/internal/platform/tx"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeTodoStore struct {
	todos map[string]domain.Todo // keyed owner+"/"+id
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{todos: make(map[string]domain.Todo)}
}

func (s *fakeTodoStore) key(owner, id string) string { return owner + "/" + id }

func (s *fakeTodoStore) List(_ context.Context, owner string) ([]domain.Todo, error) {
	var out []domain.Todo
	for _, todo := range s.todos {
		if todo.OwnerID == owner {
			out = append(out, todo)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *fakeTodoStore) Get(_ context.Context, owner, id string) (domain.Todo, error) {
	todo, ok := s.todos[s.key(owner, id)]
	if !ok {
		return domain.Todo{}, apperrors.ErrNotFound
	}
	return todo, nil
}

func (s *fakeTodoStore) Insert(_ context.Context, todo domain.Todo) error {
	s.todos[s.key(todo.OwnerID, todo.ID)] = todo
	return nil
}

func (s *fakeTodoStore) Update(_ context.Context, todo domain.Todo) error {
	k := s.key(todo.OwnerID, todo.ID)
	if _, ok := s.todos[k]; !ok {
		return apperrors.ErrNotFound
	}
	s.todos[k] = todo
	return nil
}

func (s *fakeTodoStore) Delete(_ context.Context, owner, id string) error {
	k := s.key(owner, id)
	if _, ok := s.todos[k]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.todos, k)
	return nil
}

func (s *fakeTodoStore) DeleteAll(_ context.Context, owner string) error {
	for k, todo := range s.todos {
		if todo.OwnerID == owner {
			delete(s.todos, k)
		}
	}
	return nil
}

func (s *fakeTodoStore) Reindex(ctx context.Context, owner string) error {
	todos, _ := s.List(ctx, owner)
	for idx, todo := range todos {
		todo.Position = idx
		s.todos[s.key(owner, todo.ID)] = todo
	}
	return nil
}

func newService() (*service.TodoService, *fakeTodoStore) {
	store := newFakeTodoStore()
	svc := service.NewTodoService(fixedClock{now: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)}, store, tx.NoopManager{})
	return svc, store
}

func assertContiguous(t *testing.T, todos []domain.Todo) {
	t.Helper()
	for idx, todo := range todos {
		if todo.Position != idx {
			t.Fatalf("position gap at index %d: %+v", idx, todos)
		}
	}
}

func TestReplaceAllAssignsPositionsFromOrder(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	ctx := context.Background()

	saved, err := svc.ReplaceAll(ctx, "alice", []domain.Todo{
		{ID: "t1", Text: "first"},
		{ID: "t2", Text: "second"},
		{ID: "t3", Text: "third"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	assertContiguous(t, saved)

	// Re-submitting in a new order reassigns every position.
	saved, err = svc.ReplaceAll(ctx, "alice", []domain.Todo{
		{ID: "t3", Text: "third"},
		{ID: "t1", Text: "first"},
	})
	if err != nil {
		t.Fatalf("replace again: %v", err)
	}
	assertContiguous(t, saved)
	if saved[0].ID != "t3" || saved[1].ID != "t1" {
		t.Fatalf("order not taken from input: %+v", saved)
	}

	listed, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("old items should be gone, got %d", len(listed))
	}
}

func TestReplaceAllEmptyClearsList(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.ReplaceAll(ctx, "alice", []domain.Todo{{ID: "t1", Text: "one"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	saved, err := svc.ReplaceAll(ctx, "alice", nil)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("expected empty result, got %+v", saved)
	}
	listed, _ := svc.List(ctx, "alice")
	if len(listed) != 0 {
		t.Fatalf("list should be empty, got %+v", listed)
	}
}

func TestReplaceAllRejectsBadIDs(t *testing.T) {
	t.Parallel()
	svc, store := newService()
	ctx := context.Background()

	if _, err := svc.ReplaceAll(ctx, "alice", []domain.Todo{{ID: "keep", Text: "existing"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.ReplaceAll(ctx, "alice", []domain.Todo{
		{ID: "a", Text: "one"},
		{ID: "a", Text: "dup"},
	})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("duplicate id should be invalid input, got %v", err)
	}

	_, err = svc.ReplaceAll(ctx, "alice", []domain.Todo{{ID: "  ", Text: "blank"}})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank id should be invalid input, got %v", err)
	}

	// Validation failures must never touch the stored list.
	listed, _ := store.List(ctx, "alice")
	if len(listed) != 1 || listed[0].ID != "keep" {
		t.Fatalf("stored list disturbed by rejected input: %+v", listed)
	}
}

func TestRemoveClosesPositionGap(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.ReplaceAll(ctx, "alice", []domain.Todo{
		{ID: "t1", Text: "first"},
		{ID: "t2", Text: "second"},
		{ID: "t3", Text: "third"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Remove(ctx, "alice", "t2"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	listed, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected two todos, got %d", len(listed))
	}
	assertContiguous(t, listed)
	if listed[0].ID != "t1" || listed[1].ID != "t3" {
		t.Fatalf("relative order lost: %+v", listed)
	}
}

func TestRemoveMissingTodo(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	err := svc.Remove(context.Background(), "alice", "nope")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestPatchNeverMovesPosition(t *testing.T) {
	t.Parallel()
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.ReplaceAll(ctx, "alice", []domain.Todo{
		{ID: "t1", Text: "first"},
		{ID: "t2", Text: "second"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	done := true
	text := "renamed"
	patched, err := svc.Patch(ctx, "alice", "t2", domain.Patch{Completed: &done, Text: &text})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !patched.Completed || patched.Text != "renamed" {
		t.Fatalf("patch fields not applied: %+v", patched)
	}
	if patched.Position != 1 {
		t.Fatalf("patch must not reorder, position = %d", patched.Position)
	}
}
