package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task always belongs to exactly one project and is removed together with it.
type Task struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"projectId"`
	ParentTaskID   *uuid.UUID `gorm:"type:uuid" json:"parentTaskId,omitempty"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `json:"description,omitempty"`
	TypeID         *uuid.UUID `gorm:"type:uuid" json:"typeId,omitempty"`
	Priority       Priority   `gorm:"size:20;not null" json:"priority"`
	Status         TaskStatus `gorm:"size:20;not null;index" json:"status"`
	AssigneeID     *uuid.UUID `gorm:"type:uuid;index" json:"assigneeId,omitempty"`
	ReporterID     *uuid.UUID `gorm:"type:uuid" json:"reporterId,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	DueDate        *time.Time `gorm:"index" json:"dueDate,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	Position       int        `gorm:"not null" json:"order"`
	IsArchived     bool       `gorm:"not null" json:"isArchived"`
	Version        int        `gorm:"not null" json:"version"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Project  *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Type     *TaskType `gorm:"foreignKey:TypeID;constraint:OnDelete:SET NULL" json:"type,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
	Reporter *User     `gorm:"foreignKey:ReporterID;constraint:OnDelete:SET NULL" json:"reporter,omitempty"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsOverdue reports whether the task has a due date before now and is not completed.
// Cancelled tasks still count.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}
