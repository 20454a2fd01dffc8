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

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (*model.Project, error)
}

type CreateProjectInput struct {
	Name          string              `json:"name" validate:"max=200"`
	Description   string              `json:"description"`
	Color         string              `json:"color" validate:"omitempty,hexcolor"`
	Icon          string              `json:"icon" validate:"max=50"`
	Status        model.ProjectStatus `json:"status" validate:"omitempty,enum"`
	StartDate     *time.Time          `json:"startDate"`
	TargetEndDate *time.Time          `json:"targetEndDate"`
	// OwnerID defaults to the acting user.
	OwnerID *uuid.UUID `json:"ownerId"`
}

type ProjectPatch struct {
	Name          *string                   `json:"name" validate:"omitempty,max=200"`
	Description   *string                   `json:"description"`
	Color         *string                   `json:"color" validate:"omitempty,hexcolor"`
	Icon          *string                   `json:"icon" validate:"omitempty,max=50"`
	Status        *model.ProjectStatus      `json:"status" validate:"omitempty,enum"`
	StartDate     model.Nullable[time.Time] `json:"startDate"`
	TargetEndDate model.Nullable[time.Time] `json:"targetEndDate"`
	ActualEndDate model.Nullable[time.Time] `json:"actualEndDate"`
	OwnerID       model.Nullable[uuid.UUID] `json:"ownerId"`
	IsArchived    *bool                     `json:"isArchived"`
}

type ProjectService struct {
	projects ProjectRepository
	users    UserLookup
	audit    audit.Recorder
	now      func() time.Time
}

func NewProjectService(projects ProjectRepository, users UserLookup, recorder audit.Recorder) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		audit:    recorder,
		now:      time.Now,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, actor *uuid.UUID, in CreateProjectInput) (*model.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	owner := in.OwnerID
	if owner == nil {
		owner = actor
	}
	if err := s.checkOwner(ctx, owner); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:          in.Name,
		Description:   in.Description,
		Color:         in.Color,
		Icon:          in.Icon,
		Status:        in.Status,
		StartDate:     in.StartDate,
		TargetEndDate: in.TargetEndDate,
		OwnerID:       owner,
	}
	if project.Color == "" {
		project.Color = model.DefaultProjectColor
	}
	if project.Icon == "" {
		project.Icon = model.DefaultProjectIcon
	}
	if project.Status == "" {
		project.Status = model.ProjectStatusPlanning
	}

	if err := s.projects.Create(ctx, project); err != nil {
		logger.Error("Service: failed to create project", err)
		return nil, persistenceError("failed to create project", err)
	}

	s.audit.Record(ctx, audit.Entry{
		EntityID:   project.ID,
		EntityType: model.EntityProject,
		Action:     model.ActionCreated,
		UserID:     actor,
		Details:    map[string]any{"name": project.Name},
	})

	logger.Info("Service: project created", zap.String("project_id", project.ID.String()))
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, NewNotFound("project", id)
		}
		return nil, persistenceError("failed to load project", err)
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, persistenceError("failed to list projects", err)
	}
	return projects, nil
}

// UpdateProject applies a partial update. Project status moves freely between
// any two values.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *uuid.UUID, id uuid.UUID, patch ProjectPatch) (*model.Project, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, NewValidationError("name", "is required")
		}
		patch.Name = &name
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	prior, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, patch.OwnerID.Value); err != nil {
		return nil, err
	}

	fields, details := patch.fields(s.now())
	if err := s.projects.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, NewNotFound("project", id)
		}
		logger.Error("Service: failed to update project", err, zap.String("project_id", id.String()))
		return nil, persistenceError("failed to update project", err)
	}

	entry := audit.Entry{
		EntityID:   id,
		EntityType: model.EntityProject,
		Action:     model.ActionUpdated,
		UserID:     actor,
		Details:    details,
	}
	if patch.Status != nil && *patch.Status != prior.Status {
		entry.Action = model.ActionStatusChanged
		entry.Details = map[string]any{
			"oldStatus": prior.Status,
			"newStatus": *patch.Status,
		}
	}
	s.audit.Record(ctx, entry)

	return s.GetProject(ctx, id)
}

// DeleteProject removes a project together with its tasks and their comments.
// Deleting an unknown id succeeds without an audit entry.
func (s *ProjectService) DeleteProject(ctx context.Context, actor *uuid.UUID, id uuid.UUID) error {
	project, err := s.projects.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil
		}
		logger.Error("Service: failed to delete project", err, zap.String("project_id", id.String()))
		return persistenceError("failed to delete project", err)
	}

	s.audit.Record(ctx, audit.Entry{
		EntityID:   project.ID,
		EntityType: model.EntityProject,
		Action:     model.ActionDeleted,
		UserID:     actor,
		Details:    map[string]any{"name": project.Name},
	})
	return nil
}

func (s *ProjectService) checkOwner(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	user, err := s.users.GetByID(ctx, *id)
	if err != nil {
		return persistenceError("failed to load user", err)
	}
	if user == nil {
		return NewValidationError("ownerId", "unknown user")
	}
	return nil
}

// fields returns the column map and the audit details for the patch.
// Archiving stamps archived_at; unarchiving clears it.
func (p ProjectPatch) fields(now time.Time) (map[string]any, map[string]any) {
	fields := map[string]any{"updated_at": now}
	details := make(map[string]any)

	if p.Name != nil {
		fields["name"] = *p.Name
		details["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
		details["description"] = *p.Description
	}
	if p.Color != nil {
		fields["color"] = *p.Color
		details["color"] = *p.Color
	}
	if p.Icon != nil {
		fields["icon"] = *p.Icon
		details["icon"] = *p.Icon
	}
	if p.Status != nil {
		fields["status"] = *p.Status
		details["status"] = *p.Status
	}
	if p.StartDate.Set {
		fields["start_date"] = p.StartDate.Interface()
		details["startDate"] = p.StartDate
	}
	if p.TargetEndDate.Set {
		fields["target_end_date"] = p.TargetEndDate.Interface()
		details["targetEndDate"] = p.TargetEndDate
	}
	if p.ActualEndDate.Set {
		fields["actual_end_date"] = p.ActualEndDate.Interface()
		details["actualEndDate"] = p.ActualEndDate
	}
	if p.OwnerID.Set {
		fields["owner_id"] = p.OwnerID.Interface()
		details["ownerId"] = p.OwnerID
	}
	if p.IsArchived != nil {
		fields["is_archived"] = *p.IsArchived
		details["isArchived"] = *p.IsArchived
		if *p.IsArchived {
			fields["archived_at"] = now
		} else {
			fields["archived_at"] = nil
		}
	}
	return fields, details
}
