package in

import (
	"context"

	"focusdeck/internal/modules/stats/dto"
)

type Usecase interface {
	Compute(ctx context.Context, owner string) (dto.Output, error)
}
