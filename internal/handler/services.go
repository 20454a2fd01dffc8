package handler

import (
	"context"

	"workflowhub/internal/audit"
	"workflowhub/internal/model"
	"workflowhub/internal/repository"
	"workflowhub/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	CreateTask(ctx context.Context, actor *uuid.UUID, in service.CreateTaskInput) (*model.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error)
	UpdateTask(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch service.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error
}

type ProjectService interface {
	CreateProject(ctx context.Context, actor *uuid.UUID, in service.CreateProjectInput) (*model.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	UpdateProject(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch service.ProjectPatch) (*model.Project, error)
	DeleteProject(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error
}

type CommentService interface {
	AddComment(ctx context.Context, actor *uuid.UUID, taskID uuid.UUID, content string) (*model.Comment, error)
	ListComments(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
}

type KanbanService interface {
	Move(ctx context.Context, actor *uuid.UUID, taskID uuid.UUID, from, to model.TaskStatus) (*service.MoveResult, error)
	Board(ctx context.Context, projectID uuid.UUID) (*service.Board, error)
}

type Timeline interface {
	Timeline(ctx context.Context, entityID uuid.UUID) ([]audit.TimelineEntry, error)
}

type DashboardService interface {
	Overview(ctx context.Context, opts service.DashboardOptions) (*service.Dashboard, error)
	RecentActivity(ctx context.Context, limit int) ([]audit.TimelineEntry, error)
}

type TaskTypeService interface {
	ListTaskTypes(ctx context.Context) ([]model.TaskType, error)
}
