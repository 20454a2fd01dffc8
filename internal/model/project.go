package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultProjectColor = "#3b82f6"
	DefaultProjectIcon  = "📁"
)

type Project struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"size:200;not null" json:"name"`
	Description   string        `json:"description,omitempty"`
	Color         string        `gorm:"size:7" json:"color"`
	Icon          string        `gorm:"size:50" json:"icon"`
	Status        ProjectStatus `gorm:"size:20;not null;index" json:"status"`
	StartDate     *time.Time    `json:"startDate,omitempty"`
	TargetEndDate *time.Time    `json:"targetEndDate,omitempty"`
	ActualEndDate *time.Time    `json:"actualEndDate,omitempty"`
	OwnerID       *uuid.UUID    `gorm:"type:uuid;index" json:"ownerId,omitempty"`
	IsArchived    bool          `gorm:"not null" json:"isArchived"`
	ArchivedAt    *time.Time    `json:"archivedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
