package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an authenticated user in the system.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string    `json:"name" gorm:"size:255;not null"`
	Bio          string    `json:"bio" gorm:"type:text"`
	Avatar       string    `json:"avatar" gorm:"size:512"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultAvatarURL returns a generated placeholder avatar for a new user.
func DefaultAvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
