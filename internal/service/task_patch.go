package service

import (
	"strings"
	"time"

	"workflowhub/internal/model"

	"github.com/google/uuid"
)

// TaskPatch is a partial task update. Pointer fields are applied when non-nil;
// Nullable fields distinguish "leave as is" from "clear".
type TaskPatch struct {
	Title          *string                   `json:"title" validate:"omitempty,max=255"`
	Description    *string                   `json:"description"`
	Status         *model.TaskStatus         `json:"status" validate:"omitempty,enum"`
	Priority       *model.Priority           `json:"priority" validate:"omitempty,enum"`
	TypeID         model.Nullable[uuid.UUID] `json:"typeId"`
	AssigneeID     model.Nullable[uuid.UUID] `json:"assigneeId"`
	StartDate      model.Nullable[time.Time] `json:"startDate"`
	DueDate        model.Nullable[time.Time] `json:"dueDate"`
	EstimatedHours model.Nullable[float64]   `json:"estimatedHours"`
	Position       *int                      `json:"order"`
	IsArchived     *bool                     `json:"isArchived"`
	// Version, when given, must match the stored version or the update is rejected.
	Version *int `json:"version"`
}

func (p *TaskPatch) normalize() error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return NewValidationError("title", "is required")
		}
		p.Title = &title
	}
	if p.EstimatedHours.Value != nil && *p.EstimatedHours.Value < 0 {
		return NewValidationError("estimatedHours", "must be at least 0")
	}
	return nil
}

// unchanged reports whether the patch only repeats the stored status.
func (p TaskPatch) unchanged(prior *model.Task) bool {
	if p.Status == nil || *p.Status != prior.Status || len(p.columns()) != 1 {
		return false
	}
	return p.Version == nil || *p.Version == prior.Version
}

// columns maps the submitted fields to task columns.
func (p TaskPatch) columns() map[string]any {
	fields := make(map[string]any)
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	if p.Priority != nil {
		fields["priority"] = *p.Priority
	}
	if p.TypeID.Set {
		fields["type_id"] = p.TypeID.Interface()
	}
	if p.AssigneeID.Set {
		fields["assignee_id"] = p.AssigneeID.Interface()
	}
	if p.StartDate.Set {
		fields["start_date"] = p.StartDate.Interface()
	}
	if p.DueDate.Set {
		fields["due_date"] = p.DueDate.Interface()
	}
	if p.EstimatedHours.Set {
		fields["estimated_hours"] = p.EstimatedHours.Interface()
	}
	if p.Position != nil {
		fields["position"] = *p.Position
	}
	if p.IsArchived != nil {
		fields["is_archived"] = *p.IsArchived
	}
	return fields
}

// details is the submitted field set as recorded in an UPDATED entry.
func (p TaskPatch) details() map[string]any {
	details := make(map[string]any)
	if p.Title != nil {
		details["title"] = *p.Title
	}
	if p.Description != nil {
		details["description"] = *p.Description
	}
	if p.Priority != nil {
		details["priority"] = *p.Priority
	}
	if p.Status != nil {
		details["status"] = *p.Status
	}
	if p.TypeID.Set {
		details["typeId"] = p.TypeID
	}
	if p.AssigneeID.Set {
		details["assigneeId"] = p.AssigneeID
	}
	if p.StartDate.Set {
		details["startDate"] = p.StartDate
	}
	if p.DueDate.Set {
		details["dueDate"] = p.DueDate
	}
	if p.EstimatedHours.Set {
		details["estimatedHours"] = p.EstimatedHours
	}
	if p.Position != nil {
		details["order"] = *p.Position
	}
	if p.IsArchived != nil {
		details["isArchived"] = *p.IsArchived
	}
	return details
}
