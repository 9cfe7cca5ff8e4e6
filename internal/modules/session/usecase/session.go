package usecase

import (
	"context"
	"strings"

	"focusdeck/internal/modules/session/domain"
	"focusdeck/internal/modules/session/dto"
	sessionin "focusdeck/internal/modules/session/port/in"
	"focusdeck/internal/modules/session/service"
	apperrors "focusdeck/internal/platform/errors"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.Output, error) {
	owner := strings.TrimSpace(input.Owner)
	if owner == "" {
		return dto.Output{}, apperrors.ErrUnauthenticated
	}
	session, err := i.svc.Create(ctx, owner, input.Label, input.StartedAt, input.EndedAt, input.Completed)
	if err != nil {
		return dto.Output{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) List(ctx context.Context, owner string) ([]dto.Output, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	sessions, err := i.svc.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.Output, len(sessions))
	for idx, session := range sessions {
		outputs[idx] = toOutput(session)
	}
	return outputs, nil
}

func (i *Interactor) Update(ctx context.Context, owner, sessionID string, patch dto.PatchInput) (dto.Output, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return dto.Output{}, apperrors.ErrUnauthenticated
	}
	session, err := i.svc.Update(ctx, owner, sessionID, domain.Patch{
		Label:     patch.Label,
		StartedAt: patch.StartedAt,
		EndedAt:   patch.EndedAt,
		Completed: patch.Completed,
	})
	if err != nil {
		return dto.Output{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Delete(ctx context.Context, owner, sessionID string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return apperrors.ErrUnauthenticated
	}
	return i.svc.Delete(ctx, owner, sessionID)
}

func toOutput(session domain.Session) dto.Output {
	return dto.Output{
		ID:          session.ID,
		Label:       session.Label,
		StartedAt:   session.StartedAt,
		EndedAt:     session.EndedAt,
		Completed:   session.Completed,
		CreatedAt:   session.CreatedAt,
		DurationMin: session.DurationMin(),
	}
}
