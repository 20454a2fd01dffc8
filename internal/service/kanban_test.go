package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"workflowhub/internal/model"
	"workflowhub/internal/repository"
	"workflowhub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaskUpdater struct {
	mock.Mock
}

func (m *MockTaskUpdater) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskUpdater) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskUpdater) UpdateTask(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch service.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

type MockProjectLookup struct {
	mock.Mock
}

func (m *MockProjectLookup) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

var _ service.TaskUpdater = (*MockTaskUpdater)(nil)

func TestKanbanService_Move(t *testing.T) {
	actor := uuid.New()
	taskID := uuid.New()

	stored := func(m *MockTaskUpdater, status model.TaskStatus) {
		m.On("GetTask", mock.Anything, taskID).Return(&model.Task{ID: taskID, Status: status}, nil)
	}

	tests := []struct {
		name        string
		from, to    model.TaskStatus
		setupMock   func(*MockTaskUpdater)
		expectMoved bool
		expectError bool
	}{
		{
			name: "drop on the same column is a no-op",
			from: model.TaskStatusInProgress,
			to:   model.TaskStatusInProgress,
			setupMock: func(m *MockTaskUpdater) {
				stored(m, model.TaskStatusInProgress)
			},
		},
		{
			name: "drop on the current column with unknown origin",
			to:   model.TaskStatusBlocked,
			setupMock: func(m *MockTaskUpdater) {
				stored(m, model.TaskStatusBlocked)
			},
		},
		{
			name: "stale origin already at the target",
			from: model.TaskStatusPending,
			to:   model.TaskStatusInProgress,
			setupMock: func(m *MockTaskUpdater) {
				stored(m, model.TaskStatusInProgress)
			},
		},
		{
			name: "drop on another column updates the status",
			from: model.TaskStatusPending,
			to:   model.TaskStatusCompleted,
			setupMock: func(m *MockTaskUpdater) {
				stored(m, model.TaskStatusPending)
				status := model.TaskStatusCompleted
				m.On("UpdateTask", mock.Anything, &actor, taskID, service.TaskPatch{Status: &status}).
					Return(&model.Task{ID: taskID, Status: status}, nil)
			},
			expectMoved: true,
		},
		{
			name: "unknown task",
			from: model.TaskStatusPending,
			to:   model.TaskStatusBlocked,
			setupMock: func(m *MockTaskUpdater) {
				m.On("GetTask", mock.Anything, taskID).Return(nil, service.NewNotFound("task", taskID))
			},
			expectError: true,
		},
		{
			name: "update failure surfaces",
			from: model.TaskStatusPending,
			to:   model.TaskStatusBlocked,
			setupMock: func(m *MockTaskUpdater) {
				stored(m, model.TaskStatusPending)
				m.On("UpdateTask", mock.Anything, &actor, taskID, mock.Anything).
					Return(nil, errors.New("db down"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := new(MockTaskUpdater)
			tt.setupMock(tasks)
			kanban := service.NewKanbanService(tasks, new(MockProjectLookup))

			result, err := kanban.Move(context.Background(), &actor, taskID, tt.from, tt.to)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectMoved, result.Moved)
				// клиент перерисовывает карточку по ответу
				require.NotNil(t, result.Task)
				assert.Equal(t, tt.to, result.Task.Status)
			}
			if !tt.expectMoved && !tt.expectError {
				tasks.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			tasks.AssertExpectations(t)
		})
	}
}

func TestKanbanService_Move_InvalidTarget(t *testing.T) {
	tasks := new(MockTaskUpdater)
	kanban := service.NewKanbanService(tasks, new(MockProjectLookup))

	_, err := kanban.Move(context.Background(), nil, uuid.New(), model.TaskStatusPending, "DONE")

	assert.True(t, service.IsCode(err, service.CodeValidation))
	tasks.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestKanbanService_NoOpWritesNoAudit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, err := f.tasks.CreateTask(ctx, &f.user.ID, service.CreateTaskInput{ProjectID: f.project.ID, Title: "Card"})
	require.NoError(t, err)
	before := f.auditCount(t)

	result, err := f.kanban.Move(ctx, &f.user.ID, task.ID, "", model.TaskStatusPending)
	require.NoError(t, err)
	assert.False(t, result.Moved)
	assert.Equal(t, before, f.auditCount(t))

	result, err = f.kanban.Move(ctx, &f.user.ID, task.ID, model.TaskStatusPending, model.TaskStatusInProgress)
	require.NoError(t, err)
	assert.True(t, result.Moved)
	assert.Equal(t, model.TaskStatusInProgress, result.Task.Status)
	assert.Equal(t, before+1, f.auditCount(t))
}

func TestKanbanService_RepeatedDropWithStaleOrigin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, err := f.tasks.CreateTask(ctx, &f.user.ID, service.CreateTaskInput{ProjectID: f.project.ID, Title: "Card"})
	require.NoError(t, err)

	first, err := f.kanban.Move(ctx, &f.user.ID, task.ID, model.TaskStatusPending, model.TaskStatusInProgress)
	require.NoError(t, err)
	require.True(t, first.Moved)
	before := f.auditCount(t)

	// второй клиент повторяет тот же перенос со старой колонкой
	again, err := f.kanban.Move(ctx, &f.user.ID, task.ID, model.TaskStatusPending, model.TaskStatusInProgress)
	require.NoError(t, err)
	assert.False(t, again.Moved)
	require.NotNil(t, again.Task)
	assert.Equal(t, first.Task.Version, again.Task.Version)
	assert.Equal(t, model.TaskStatusInProgress, again.Task.Status)
	assert.Equal(t, before, f.auditCount(t))
}

func TestKanbanService_Board(t *testing.T) {
	projectID := uuid.New()
	now := time.Now()

	tasks := new(MockTaskUpdater)
	projects := new(MockProjectLookup)
	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	tasks.On("ListTasks", mock.Anything, repository.TaskFilter{ProjectID: &projectID, Expand: true}).Return([]model.Task{
		{Title: "late", Status: model.TaskStatusPending, Position: 1, CreatedAt: now},
		{Title: "first", Status: model.TaskStatusPending, Position: 0, CreatedAt: now.Add(time.Minute)},
		{Title: "second", Status: model.TaskStatusPending, Position: 1, CreatedAt: now.Add(-time.Minute)},
		{Title: "done", Status: model.TaskStatusCompleted},
	}, nil)

	board, err := service.NewKanbanService(tasks, projects).Board(context.Background(), projectID)
	require.NoError(t, err)

	require.Len(t, board.Columns, 6)
	for i, status := range model.TaskStatuses {
		assert.Equal(t, status, board.Columns[i].Status)
		assert.NotNil(t, board.Columns[i].Tasks)
	}

	pending := board.Columns[0].Tasks
	require.Len(t, pending, 3)
	assert.Equal(t, "first", pending[0].Title)
	assert.Equal(t, "second", pending[1].Title)
	assert.Equal(t, "late", pending[2].Title)
	assert.Len(t, board.Columns[4].Tasks, 1)
	assert.Empty(t, board.Columns[2].Tasks)
}

func TestKanbanService_Board_UnknownProject(t *testing.T) {
	projects := new(MockProjectLookup)
	projects.On("GetByID", mock.Anything, mock.Anything).Return(nil, repository.ErrProjectNotFound)

	_, err := service.NewKanbanService(new(MockTaskUpdater), projects).Board(context.Background(), uuid.New())

	assert.True(t, service.IsCode(err, service.CodeNotFound))
}
