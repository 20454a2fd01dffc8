package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is owned by both its task and its author; removing either removes the comment.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index" json:"taskId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"userId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Task   *Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Author *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
