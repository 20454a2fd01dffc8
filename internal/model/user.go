package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	AvatarURL      *string   `gorm:"size:500" json:"avatarUrl,omitempty"`
	Role           Role      `gorm:"size:20;not null" json:"role"`
	IsActive       bool      `gorm:"not null" json:"isActive"`
	HashedPassword string    `gorm:"size:100" json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
