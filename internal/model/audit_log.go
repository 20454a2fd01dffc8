package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is an append-only history row. EntityID is not a foreign key so the
// history of deleted tasks and projects survives.
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EntityID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"entityId"`
	EntityType EntityType     `gorm:"size:20;not null" json:"entityType"`
	Action     AuditAction    `gorm:"size:20;not null" json:"action"`
	UserID     *uuid.UUID     `gorm:"type:uuid" json:"userId"`
	Details    datatypes.JSON `json:"details,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
