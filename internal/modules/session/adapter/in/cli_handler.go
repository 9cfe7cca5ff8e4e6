package in

import (
	"context"

	sessiondto "focusdeck/internal/modules/session/dto"
	sessionin "focusdeck/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Log(ctx context.Context, input sessiondto.CreateInput) (sessiondto.Output, error) {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) List(ctx context.Context, owner string) ([]sessiondto.Output, error) {
	return h.usecase.List(ctx, owner)
}

func (h CLIHandler) Edit(ctx context.Context, owner, sessionID string, patch sessiondto.PatchInput) (sessiondto.Output, error) {
	return h.usecase.Update(ctx, owner, sessionID, patch)
}

func (h CLIHandler) Remove(ctx context.Context, owner, sessionID string) error {
	return h.usecase.Delete(ctx, owner, sessionID)
}
