package in

import (
	"context"

	tododto "focusdeck/internal/modules/todo/dto"
	todoin "focusdeck/internal/modules/todo/port/in"
)

type CLIHandler struct {
	usecase todoin.Usecase
}

func NewCLIHandler(usecase todoin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, owner string) ([]tododto.Output, error) {
	return h.usecase.List(ctx, owner)
}

func (h CLIHandler) ReplaceAll(ctx context.Context, owner string, items []tododto.ItemInput) ([]tododto.Output, error) {
	return h.usecase.ReplaceAll(ctx, owner, items)
}

func (h CLIHandler) Patch(ctx context.Context, owner, todoID string, patch tododto.PatchInput) (tododto.Output, error) {
	return h.usecase.Patch(ctx, owner, todoID, patch)
}

func (h CLIHandler) Remove(ctx context.Context, owner, todoID string) error {
	return h.usecase.Remove(ctx, owner, todoID)
}
