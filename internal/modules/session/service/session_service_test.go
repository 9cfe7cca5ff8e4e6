package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusdeck/internal/modules/session/domain"
	"focusdeck/internal/modules/session/service"
	apperrors "focusdeck/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return "sess_" + string(rune('0'+g.n))
}

type fakeSessionStore struct {
	sessions map[string]domain.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *fakeSessionStore) Insert(_ context.Context, session domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) GetByID(_ context.Context, owner, id string) (domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok || session.OwnerID != owner {
		return domain.Session{}, apperrors.ErrNotFound
	}
	return session, nil
}

func (s *fakeSessionStore) Update(_ context.Context, session domain.Session) error {
	if _, ok := s.sessions[session.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, owner, id string) error {
	session, ok := s.sessions[id]
	if !ok || session.OwnerID != owner {
		return apperrors.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *fakeSessionStore) List(_ context.Context, owner string) ([]domain.Session, error) {
	var out []domain.Session
	for _, session := range s.sessions {
		if session.OwnerID == owner {
			out = append(out, session)
		}
	}
	return out, nil
}

func TestCreateFillsDefaults(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := newFakeSessionStore()
	svc := service.NewSessionService(fixedClock{now: now}, &seqID{}, store)

	session, err := svc.Create(context.Background(), "alice", "   ", time.Time{}, time.Time{}, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if session.Label != domain.DefaultLabel {
		t.Fatalf("blank label should normalize to default, got %q", session.Label)
	}
	if !session.StartedAt.Equal(now) {
		t.Fatalf("zero start should default to now, got %v", session.StartedAt)
	}
	if got := session.DurationMin(); got != domain.DefaultFocusMinutes {
		t.Fatalf("zero end should give the default interval, got %d minutes", got)
	}
	if _, ok := store.sessions[session.ID]; !ok {
		t.Fatalf("session not persisted")
	}
}

func TestCreateKeepsExplicitTimes(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := newFakeSessionStore()
	svc := service.NewSessionService(fixedClock{now: now}, &seqID{}, store)

	start := now.Add(-50 * time.Minute)
	end := now.Add(-10 * time.Minute)
	session, err := svc.Create(context.Background(), "alice", "deep work", start, end, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := session.DurationMin(); got != 40 {
		t.Fatalf("expected 40 minutes, got %d", got)
	}
	if session.Label != "deep work" {
		t.Fatalf("label mangled: %q", session.Label)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := newFakeSessionStore()
	svc := service.NewSessionService(fixedClock{now: now}, &seqID{}, store)

	session, err := svc.Create(context.Background(), "alice", "draft", time.Time{}, time.Time{}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := true
	updated, err := svc.Update(context.Background(), "alice", session.ID, domain.Patch{Completed: &completed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("patch not applied")
	}
	if updated.Label != "draft" {
		t.Fatalf("untouched field changed: %q", updated.Label)
	}
}

func TestUpdateForeignOwnerIsNotFound(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	store := newFakeSessionStore()
	svc := service.NewSessionService(fixedClock{now: now}, &seqID{}, store)

	session, err := svc.Create(context.Background(), "alice", "", time.Time{}, time.Time{}, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := false
	_, err = svc.Update(context.Background(), "bob", session.ID, domain.Patch{Completed: &completed})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("foreign owner should look like not-found, got %v", err)
	}
}

func TestDeleteMissingSession(t *testing.T) {
	t.Parallel()
	store := newFakeSessionStore()
	svc := service.NewSessionService(fixedClock{now: time.Now().UTC()}, &seqID{}, store)

	err := svc.Delete(context.Background(), "alice", "sess_missing")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
