package usecase

import (
	"context"
	"strings"

	"focusdeck/internal/modules/todo/domain"
	"focusdeck/internal/modules/todo/dto"
	todoin "focusdeck/internal/modules/todo/port/in"
	"focusdeck/internal/modules/todo/service"
	apperrors "focusdeck/internal/platform/errors"
)

type Interactor struct {
	svc *service.TodoService
}

func NewInteractor(svc *service.TodoService) todoin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context, owner string) ([]dto.Output, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	todos, err := i.svc.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return toOutputs(todos), nil
}

func (i *Interactor) ReplaceAll(ctx context.Context, owner string, items []dto.ItemInput) ([]dto.Output, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	todos := make([]domain.Todo, len(items))
	for idx, item := range items {
		todos[idx] = domain.Todo{
			ID:              item.ID,
			Text:            item.Text,
			Completed:       item.Completed,
			RecordedInStats: item.RecordedInStats,
		}
	}
	saved, err := i.svc.ReplaceAll(ctx, owner, todos)
	if err != nil {
		return nil, err
	}
	return toOutputs(saved), nil
}

func (i *Interactor) Patch(ctx context.Context, owner, todoID string, patch dto.PatchInput) (dto.Output, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return dto.Output{}, apperrors.ErrUnauthenticated
	}
	todo, err := i.svc.Patch(ctx, owner, todoID, domain.Patch{
		Text:            patch.Text,
		Completed:       patch.Completed,
		RecordedInStats: patch.RecordedInStats,
	})
	if err != nil {
		return dto.Output{}, err
	}
	return toOutput(todo), nil
}

func (i *Interactor) Remove(ctx context.Context, owner, todoID string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return apperrors.ErrUnauthenticated
	}
	return i.svc.Remove(ctx, owner, todoID)
}

func toOutput(todo domain.Todo) dto.Output {
	return dto.Output{
		ID:              todo.ID,
		Text:            todo.Text,
		Completed:       todo.Completed,
		RecordedInStats: todo.RecordedInStats,
		Position:        todo.Position,
	}
}

func toOutputs(todos []domain.Todo) []dto.Output {
	outputs := make([]dto.Output, len(todos))
	for idx, todo := range todos {
		outputs[idx] = toOutput(todo)
	}
	return outputs
}
