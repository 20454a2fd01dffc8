package handler_test

import (
	"context"

	"workflowhub/internal/audit"
	"workflowhub/internal/handler"
	"workflowhub/internal/model"
	"workflowhub/internal/repository"
	"workflowhub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, actor *uuid.UUID, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch service.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(ctx context.Context, actor *uuid.UUID, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch service.ProjectPatch) (*model.Project, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockKanbanService struct {
	mock.Mock
}

func (m *MockKanbanService) Move(ctx context.Context, actor *uuid.UUID, taskID uuid.UUID, from, to model.TaskStatus) (*service.MoveResult, error) {
	args := m.Called(ctx, actor, taskID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MoveResult), args.Error(1)
}

func (m *MockKanbanService) Board(ctx context.Context, projectID uuid.UUID) (*service.Board, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Board), args.Error(1)
}

type MockTimeline struct {
	mock.Mock
}

func (m *MockTimeline) Timeline(ctx context.Context, entityID uuid.UUID) ([]audit.TimelineEntry, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.TimelineEntry), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, actor *uuid.UUID, taskID uuid.UUID, content string) (*model.Comment, error) {
	args := m.Called(ctx, actor, taskID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) ListComments(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Overview(ctx context.Context, opts service.DashboardOptions) (*service.Dashboard, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *MockDashboardService) RecentActivity(ctx context.Context, limit int) ([]audit.TimelineEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.TimelineEntry), args.Error(1)
}

type MockTaskTypeService struct {
	mock.Mock
}

func (m *MockTaskTypeService) ListTaskTypes(ctx context.Context) ([]model.TaskType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskType), args.Error(1)
}

var (
	_ handler.TaskService      = (*MockTaskService)(nil)
	_ handler.ProjectService   = (*MockProjectService)(nil)
	_ handler.KanbanService    = (*MockKanbanService)(nil)
	_ handler.Timeline         = (*MockTimeline)(nil)
	_ handler.CommentService   = (*MockCommentService)(nil)
	_ handler.DashboardService = (*MockDashboardService)(nil)
	_ handler.TaskTypeService  = (*MockTaskTypeService)(nil)
)
