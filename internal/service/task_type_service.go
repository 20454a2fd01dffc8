package service

import (
	"context"

	"workflowhub/internal/model"
)

type TaskTypeCatalog interface {
	ListActive(ctx context.Context) ([]model.TaskType, error)
}

type TaskTypeService struct {
	types TaskTypeCatalog
}

func NewTaskTypeService(types TaskTypeCatalog) *TaskTypeService {
	return &TaskTypeService{types: types}
}

func (s *TaskTypeService) ListTaskTypes(ctx context.Context) ([]model.TaskType, error) {
	types, err := s.types.ListActive(ctx)
	if err != nil {
		return nil, persistenceError("failed to list task types", err)
	}
	return types, nil
}
