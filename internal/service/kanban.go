package service

import (
	"context"
	"errors"
	"sort"

	"workflowhub/internal/logger"
	"workflowhub/internal/model"
	"workflowhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskUpdater is the part of TaskService the board drives.
type TaskUpdater interface {
	GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error)
	UpdateTask(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch TaskPatch) (*model.Task, error)
}

type MoveResult struct {
	Moved bool        `json:"moved"`
	Task  *model.Task `json:"task"`
}

type Column struct {
	Status model.TaskStatus `json:"status"`
	Tasks  []model.Task     `json:"tasks"`
}

type Board struct {
	ProjectID uuid.UUID `json:"projectId"`
	Columns   []Column  `json:"columns"`
}

// KanbanService turns a card drop into a status update.
type KanbanService struct {
	tasks    TaskUpdater
	projects ProjectLookup
}

func NewKanbanService(tasks TaskUpdater, projects ProjectLookup) *KanbanService {
	return &KanbanService{tasks: tasks, projects: projects}
}

// Move drops a task onto the column of status to. from is the column the drag
// started in; the stored status decides whether anything changes. Dropping a
// task onto its current column writes nothing and returns the task as stored.
func (s *KanbanService) Move(ctx context.Context, actor *uuid.UUID, taskID uuid.UUID, from, to model.TaskStatus) (*MoveResult, error) {
	if !to.Valid() {
		return nil, NewValidationError("to", "unknown value "+string(to))
	}
	if from != "" && !from.Valid() {
		return nil, NewValidationError("from", "unknown value "+string(from))
	}

	current, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if from != "" && from != current.Status {
		logger.Info("Kanban: stale drag origin",
			zap.String("task_id", taskID.String()),
			zap.String("from", string(from)),
			zap.String("current", string(current.Status)))
	}
	from = current.Status

	if from == to {
		return &MoveResult{Moved: false, Task: current}, nil
	}

	task, err := s.tasks.UpdateTask(ctx, actor, taskID, TaskPatch{Status: &to})
	if err != nil {
		logger.Warn("Kanban: move failed",
			zap.String("task_id", taskID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Error(err))
		return nil, err
	}
	return &MoveResult{Moved: true, Task: task}, nil
}

// Board groups the tasks of a project into one column per status.
func (s *KanbanService) Board(ctx context.Context, projectID uuid.UUID) (*Board, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, NewNotFound("project", projectID)
		}
		return nil, persistenceError("failed to load project", err)
	}

	tasks, err := s.tasks.ListTasks(ctx, repository.TaskFilter{ProjectID: &projectID, Expand: true})
	if err != nil {
		return nil, err
	}

	byStatus := make(map[model.TaskStatus][]model.Task, len(model.TaskStatuses))
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	board := &Board{ProjectID: projectID, Columns: make([]Column, 0, len(model.TaskStatuses))}
	for _, status := range model.TaskStatuses {
		column := byStatus[status]
		sort.SliceStable(column, func(i, j int) bool {
			if column[i].Position != column[j].Position {
				return column[i].Position < column[j].Position
			}
			return column[i].CreatedAt.Before(column[j].CreatedAt)
		})
		if column == nil {
			column = []model.Task{}
		}
		board.Columns = append(board.Columns, Column{Status: status, Tasks: column})
	}
	return board, nil
}
