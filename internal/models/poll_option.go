package models

import (
	"time"

	"github.com/google/uuid"
)

// PollOption represents one selectable choice belonging to exactly one poll.
// Positions are contiguous 0..n-1 in creation order within a poll.
type PollOption struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PollID    uuid.UUID `gorm:"type:uuid;not null;index" json:"poll_id"`
	Text      string    `gorm:"size:100;not null" json:"text"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	VoteCount int       `gorm:"not null;default:0" json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for PollOption model
func (PollOption) TableName() string {
	return "poll_options"
}
