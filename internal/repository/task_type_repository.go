package repository

import (
	"context"
	"errors"

	"workflowhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskTypeRepository struct {
	db *gorm.DB
}

func NewTaskTypeRepository(db *gorm.DB) *TaskTypeRepository {
	return &TaskTypeRepository{db: db}
}

func (r *TaskTypeRepository) Create(ctx context.Context, taskType *model.TaskType) error {
	return r.db.WithContext(ctx).Create(taskType).Error
}

// FindByName returns nil, nil when the type does not exist
func (r *TaskTypeRepository) FindByName(ctx context.Context, name string) (*model.TaskType, error) {
	var taskType model.TaskType
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&taskType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &taskType, nil
}

// ListActive returns active task types ordered by name
func (r *TaskTypeRepository) ListActive(ctx context.Context) ([]model.TaskType, error) {
	var types []model.TaskType
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&types).Error
	return types, err
}

// GetByID returns nil, nil when the type does not exist
func (r *TaskTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TaskType, error) {
	var taskType model.TaskType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&taskType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &taskType, nil
}
