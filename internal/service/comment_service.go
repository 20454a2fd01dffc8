package service

import (
	"context"
	"errors"
	"strings"

	"workflowhub/internal/audit"
	"workflowhub/internal/logger"
	"workflowhub/internal/model"
	"workflowhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const commentExcerptLength = 100

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
}

type TaskLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
}

type CommentService struct {
	comments CommentRepository
	tasks    TaskLookup
	audit    audit.Recorder
}

func NewCommentService(comments CommentRepository, tasks TaskLookup, recorder audit.Recorder) *CommentService {
	return &CommentService{
		comments: comments,
		tasks:    tasks,
		audit:    recorder,
	}
}

// AddComment stores a comment authored by the actor and records COMMENTED on the task.
func (s *CommentService) AddComment(ctx context.Context, actor *uuid.UUID, taskID uuid.UUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewValidationError("content", "is required")
	}
	if actor == nil {
		return nil, NewValidationError("userId", "comments require an author")
	}

	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, NewNotFound("task", taskID)
		}
		return nil, persistenceError("failed to load task", err)
	}

	comment := &model.Comment{
		TaskID:  taskID,
		UserID:  *actor,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		logger.Error("Service: failed to add comment", err, zap.String("task_id", taskID.String()))
		return nil, persistenceError("failed to add comment", err)
	}

	s.audit.Record(ctx, audit.Entry{
		EntityID:   taskID,
		EntityType: model.EntityTask,
		Action:     model.ActionCommented,
		UserID:     actor,
		Details: map[string]any{
			"commentId": comment.ID,
			"content":   excerpt(content, commentExcerptLength),
		},
	})

	// reload to resolve the author
	stored, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return comment, nil
	}
	return stored, nil
}

// ListComments returns the comments on a task, newest first.
func (s *CommentService) ListComments(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, NewNotFound("task", taskID)
		}
		return nil, persistenceError("failed to load task", err)
	}
	comments, err := s.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, persistenceError("failed to list comments", err)
	}
	return comments, nil
}

func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
