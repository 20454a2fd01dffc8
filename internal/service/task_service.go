package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"workflowhub/internal/audit"
	"workflowhub/internal/logger"
	"workflowhub/internal/model"
	"workflowhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, expectedVersion *int) error
	Delete(ctx context.Context, id uuid.UUID) (*model.Task, error)
}

type ProjectLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
}

// UserLookup returns nil, nil for an unknown id.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// TaskTypeLookup returns nil, nil for an unknown id.
type TaskTypeLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.TaskType, error)
}

type CreateTaskInput struct {
	ProjectID      uuid.UUID        `json:"projectId"`
	ParentTaskID   *uuid.UUID       `json:"parentTaskId"`
	Title          string           `json:"title" validate:"max=255"`
	Description    string           `json:"description"`
	TypeID         *uuid.UUID       `json:"typeId"`
	Priority       model.Priority   `json:"priority" validate:"omitempty,enum"`
	Status         model.TaskStatus `json:"status" validate:"omitempty,enum"`
	AssigneeID     *uuid.UUID       `json:"assigneeId"`
	ReporterID     *uuid.UUID       `json:"reporterId"`
	StartDate      *time.Time       `json:"startDate"`
	DueDate        *time.Time       `json:"dueDate"`
	EstimatedHours *float64         `json:"estimatedHours" validate:"omitempty,min=0"`
	Position       int              `json:"order"`
}

type TaskService struct {
	tasks    TaskRepository
	projects ProjectLookup
	users    UserLookup
	types    TaskTypeLookup
	audit    audit.Recorder
	policy   TransitionPolicy
	now      func() time.Time
}

func NewTaskService(tasks TaskRepository, projects ProjectLookup, users UserLookup, types TaskTypeLookup, recorder audit.Recorder) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
		types:    types,
		audit:    recorder,
		policy:   AllowAll(),
		now:      time.Now,
	}
}

// WithPolicy restricts status transitions. The default permits every move.
func (s *TaskService) WithPolicy(policy TransitionPolicy) *TaskService {
	s.policy = policy
	return s
}

// CreateTask stores a new task. The CREATED entry is attributed to the reporter
// when one is given, otherwise to the actor.
func (s *TaskService) CreateTask(ctx context.Context, actor *uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.ProjectID == uuid.Nil {
		return nil, NewValidationError("projectId", "is required")
	}
	if in.Title == "" {
		return nil, NewValidationError("title", "is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, NewNotFound("project", in.ProjectID)
		}
		return nil, persistenceError("failed to load project", err)
	}
	if err := s.checkParent(ctx, in.ProjectID, in.ParentTaskID); err != nil {
		return nil, err
	}
	if err := s.checkType(ctx, in.TypeID); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, "assigneeId", in.AssigneeID); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, "reporterId", in.ReporterID); err != nil {
		return nil, err
	}

	task := &model.Task{
		ProjectID:      in.ProjectID,
		ParentTaskID:   in.ParentTaskID,
		Title:          in.Title,
		Description:    in.Description,
		TypeID:         in.TypeID,
		Priority:       in.Priority,
		Status:         in.Status,
		AssigneeID:     in.AssigneeID,
		ReporterID:     in.ReporterID,
		StartDate:      in.StartDate,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		Position:       in.Position,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	if task.Status == model.TaskStatusCompleted {
		now := s.now()
		task.CompletedAt = &now
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		logger.Error("Service: failed to create task", err, zap.String("project_id", in.ProjectID.String()))
		return nil, persistenceError("failed to create task", err)
	}

	attributed := actor
	if in.ReporterID != nil {
		attributed = in.ReporterID
	}
	s.audit.Record(ctx, audit.Entry{
		EntityID:   task.ID,
		EntityType: model.EntityTask,
		Action:     model.ActionCreated,
		UserID:     attributed,
		Details: map[string]any{
			"title":     task.Title,
			"projectId": task.ProjectID,
		},
	})

	logger.Info("Service: task created", zap.String("task_id", task.ID.String()))
	return task, nil
}

// GetTask returns a task with its project, type, assignee and reporter.
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, NewNotFound("task", id)
		}
		return nil, persistenceError("failed to load task", err)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, NewValidationError("status", "unknown value "+string(filter.Status))
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, NewValidationError("priority", "unknown value "+string(filter.Priority))
	}
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, persistenceError("failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update and records exactly one audit entry:
// STATUS_CHANGED when the status changed, otherwise ASSIGNED when the assignee
// changed, otherwise UPDATED with the submitted fields. A patch that only
// restates the current status is not written.
func (s *TaskService) UpdateTask(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch TaskPatch) (*model.Task, error) {
	if err := patch.normalize(); err != nil {
		return nil, err
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	prior, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.unchanged(prior) {
		return prior, nil
	}
	if patch.Status != nil && !s.policy.Allows(prior.Status, *patch.Status) {
		return nil, newTransitionError(prior.Status, *patch.Status)
	}
	if err := s.checkType(ctx, patch.TypeID.Value); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, "assigneeId", patch.AssigneeID.Value); err != nil {
		return nil, err
	}

	now := s.now()
	fields := patch.columns()
	if patch.Status != nil && *patch.Status != prior.Status {
		switch {
		case *patch.Status == model.TaskStatusCompleted:
			fields["completed_at"] = now
		case prior.Status == model.TaskStatusCompleted:
			fields["completed_at"] = nil
		}
	}
	fields["updated_at"] = now

	if err := s.tasks.Update(ctx, id, fields, patch.Version); err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, newVersionConflict(id, *patch.Version, err)
		case errors.Is(err, repository.ErrTaskNotFound):
			return nil, NewNotFound("task", id)
		}
		logger.Error("Service: failed to update task", err, zap.String("task_id", id.String()))
		return nil, persistenceError("failed to update task", err)
	}

	s.audit.Record(ctx, updateEntry(actor, prior, patch))

	return s.GetTask(ctx, id)
}

func updateEntry(actor *uuid.UUID, prior *model.Task, patch TaskPatch) audit.Entry {
	entry := audit.Entry{
		EntityID:   prior.ID,
		EntityType: model.EntityTask,
		UserID:     actor,
	}

	switch {
	case patch.Status != nil && *patch.Status != prior.Status:
		entry.Action = model.ActionStatusChanged
		entry.Details = map[string]any{
			"oldStatus": prior.Status,
			"newStatus": *patch.Status,
		}
	case patch.AssigneeID.Set && !sameID(prior.AssigneeID, patch.AssigneeID.Value):
		entry.Action = model.ActionAssigned
		entry.Details = map[string]any{
			"assigneeId": patch.AssigneeID.Value,
		}
	default:
		entry.Action = model.ActionUpdated
		entry.Details = patch.details()
	}
	return entry
}

// DeleteTask removes a task. Deleting an unknown id succeeds without an audit entry.
func (s *TaskService) DeleteTask(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error {
	task, err := s.tasks.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			logger.Info("Service: task already gone", zap.String("task_id", id.String()))
			return nil
		}
		logger.Error("Service: failed to delete task", err, zap.String("task_id", id.String()))
		return persistenceError("failed to delete task", err)
	}

	s.audit.Record(ctx, audit.Entry{
		EntityID:   task.ID,
		EntityType: model.EntityTask,
		Action:     model.ActionDeleted,
		UserID:     actor,
		Details: map[string]any{
			"title":     task.Title,
			"projectId": task.ProjectID,
		},
	})
	return nil
}

func (s *TaskService) checkParent(ctx context.Context, projectID uuid.UUID, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.tasks.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return NewValidationError("parentTaskId", "unknown task")
		}
		return persistenceError("failed to load parent task", err)
	}
	if parent.ProjectID != projectID {
		return NewValidationError("parentTaskId", "belongs to another project")
	}
	return nil
}

func (s *TaskService) checkUser(ctx context.Context, field string, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	user, err := s.users.GetByID(ctx, *id)
	if err != nil {
		return persistenceError("failed to load user", err)
	}
	if user == nil {
		return NewValidationError(field, "unknown user")
	}
	return nil
}

func (s *TaskService) checkType(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	taskType, err := s.types.GetByID(ctx, *id)
	if err != nil {
		return persistenceError("failed to load task type", err)
	}
	if taskType == nil {
		return NewValidationError("typeId", "unknown task type")
	}
	return nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
