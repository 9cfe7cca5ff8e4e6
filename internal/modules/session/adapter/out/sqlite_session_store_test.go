package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sqlitestore "focusdeck/internal/modules/session/adapter/out"
	"focusdeck/internal/modules/session/domain"
	sessionout "focusdeck/internal/modules/session/port/out"
	apperrors "focusdeck/internal/platform/errors"
	"focusdeck/internal/platform/sqlite"
)

func newStore(t *testing.T) sessionout.SessionStore {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "focusdeck.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := sqlitestore.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func seedSession(owner, id string, startedAt time.Time, minutes int, completed bool) domain.Session {
	return domain.Session{
		ID:        id,
		OwnerID:   owner,
		Label:     "Focus session",
		StartedAt: startedAt,
		EndedAt:   startedAt.Add(time.Duration(minutes) * time.Minute),
		Completed: completed,
		CreatedAt: startedAt,
	}
}

func TestInsertAndRoundTrip(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	start := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)

	if err := store.Insert(ctx, seedSession("alice", "s1", start, 25, true)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	session, err := store.GetByID(ctx, "alice", "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !session.StartedAt.Equal(start) || !session.Completed {
		t.Fatalf("round trip mismatch: %+v", session)
	}
	if got := session.DurationMin(); got != 25 {
		t.Fatalf("expected derived duration 25, got %d", got)
	}
}

func TestForeignOwnerLooksLikeMissing(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	if err := store.Insert(ctx, seedSession("alice", "s1", start, 25, true)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := store.GetByID(ctx, "bob", "s1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign owner get should be not-found, got %v", err)
	}
	if err := store.Delete(ctx, "bob", "s1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign owner delete should be not-found, got %v", err)
	}

	other := seedSession("bob", "s1", start, 10, false)
	if err := store.Update(ctx, other); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign owner update should be not-found, got %v", err)
	}

	// Alice's record is untouched by all of the above.
	session, err := store.GetByID(ctx, "alice", "s1")
	if err != nil || !session.Completed {
		t.Fatalf("alice's record disturbed: %+v err=%v", session, err)
	}
}

func TestListNewestFirst(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"s1", "s2", "s3"} {
		if err := store.Insert(ctx, seedSession("alice", id, base.Add(time.Duration(i)*time.Hour), 25, true)); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	if err := store.Insert(ctx, seedSession("bob", "sx", base, 25, true)); err != nil {
		t.Fatalf("insert bob: %v", err)
	}

	sessions, err := store.List(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected alice's three sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "s3" || sessions[2].ID != "s1" {
		t.Fatalf("not newest first: %+v", sessions)
	}
}

func TestUpdatePersistsPatchResult(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	if err := store.Insert(ctx, seedSession("alice", "s1", start, 25, false)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	session, err := store.GetByID(ctx, "alice", "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	session.Label = "deep work"
	session.Completed = true
	session.EndedAt = start.Add(40 * time.Minute)
	if err := store.Update(ctx, session); err != nil {
		t.Fatalf("update: %v", err)
	}

	session, err = store.GetByID(ctx, "alice", "s1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if session.Label != "deep work" || !session.Completed || session.DurationMin() != 40 {
		t.Fatalf("update not persisted: %+v", session)
	}
}
