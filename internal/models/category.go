package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a reference entity; many polls may point at one category
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"size:255" json:"description,omitempty"`
	Color       string    `gorm:"size:20;not null;default:#6366f1" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}
