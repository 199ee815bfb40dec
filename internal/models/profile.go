package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a user identity shared with the auth provider
type Profile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName      *string   `gorm:"size:100" json:"full_name,omitempty"`
	Bio           *string   `gorm:"size:500" json:"bio,omitempty"`
	AvatarURL     *string   `gorm:"size:500" json:"avatar_url,omitempty"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for Profile model
func (Profile) TableName() string {
	return "profiles"
}
