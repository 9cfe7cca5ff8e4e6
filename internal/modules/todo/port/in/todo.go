package in

import (
	"context"

	"focusdeck/internal/modules/todo/dto"
)

type Usecase interface {
	List(ctx context.Context, owner string) ([]dto.Output, error)
	ReplaceAll(ctx context.Context, owner string, items []dto.ItemInput) ([]dto.Output, error)
	Patch(ctx context.Context, owner, todoID string, patch dto.PatchInput) (dto.Output, error)
	Remove(ctx context.Context, owner, todoID string) error
}
