package in

import (
	"context"

	statsdto "focusdeck/internal/modules/stats/dto"
	statsin "focusdeck/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Compute(ctx context.Context, owner string) (statsdto.Output, error) {
	return h.usecase.Compute(ctx, owner)
}
