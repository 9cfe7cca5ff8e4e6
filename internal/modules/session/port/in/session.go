package in

import (
	"context"

	"focusdeck/internal/modules/session/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.Output, error)
	List(ctx context.Context, owner string) ([]dto.Output, error)
	Update(ctx context.Context, owner, sessionID string, patch dto.PatchInput) (dto.Output, error)
	Delete(ctx context.Context, owner, sessionID string) error
}
