package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskType is a catalogue entry used to classify tasks (bug, design, meeting...).
type TaskType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `gorm:"size:50" json:"icon"`
	Color       string    `gorm:"size:7" json:"color"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *TaskType) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
