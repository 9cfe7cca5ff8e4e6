package service

import (
	"context"
	"time"

	"focusdeck/internal/modules/session/domain"
	sessionout "focusdeck/internal/modules/session/port/out"
	"focusdeck/internal/platform/clock"
	"focusdeck/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store}
}

// Create normalizes the label, fills missing timestamps (start defaults to
// now, end to start plus the canonical focus interval) and appends the
// record.
func (s *SessionService) Create(ctx context.Context, owner, label string, startedAt, endedAt time.Time, completed bool) (domain.Session, error) {
	now := s.clock.Now()
	if startedAt.IsZero() {
		startedAt = now
	}
	if endedAt.IsZero() {
		endedAt = startedAt.Add(domain.DefaultFocusMinutes * time.Minute)
	}
	session := domain.Session{
		ID:        s.idGen.New(),
		OwnerID:   owner,
		Label:     domain.NormalizeLabel(label),
		StartedAt: startedAt.UTC(),
		EndedAt:   endedAt.UTC(),
		Completed: completed,
		CreatedAt: now,
	}
	if err := s.store.Insert(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context, owner string) ([]domain.Session, error) {
	return s.store.List(ctx, owner)
}

// Update loads the owner's record, applies the present patch fields and
// writes the merged row back. Position of the lookup before the write is
// what folds ownership mismatch into not-found.
func (s *SessionService) Update(ctx context.Context, owner, sessionID string, patch domain.Patch) (domain.Session, error) {
	session, err := s.store.GetByID(ctx, owner, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	session.Apply(patch)
	if err := s.store.Update(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, owner, sessionID string) error {
	if _, err := s.store.GetByID(ctx, owner, sessionID); err != nil {
		return err
	}
	return s.store.Delete(ctx, owner, sessionID)
}
