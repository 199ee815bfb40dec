package models

import (
	"time"

	"github.com/google/uuid"
)

// Poll status values. Transitions only move forward in this order.
const (
	PollStatusDraft    = "draft"
	PollStatusActive   = "active"
	PollStatusClosed   = "closed"
	PollStatusArchived = "archived"
)

// Vote cardinality values
const (
	VoteTypeSingle   = "single"
	VoteTypeMultiple = "multiple"
)

// Poll represents a poll with a lifecycle status and denormalized vote total
type Poll struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string       `gorm:"size:100;not null" json:"title"`
	Description        *string      `gorm:"size:300" json:"description,omitempty"`
	CreatorID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator            *Profile     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CategoryID         *uuid.UUID   `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category           *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Status             string       `gorm:"size:20;not null;default:active;index" json:"status"` // draft, active, closed, archived
	VoteType           string       `gorm:"size:20;not null;default:single" json:"vote_type"`    // single, multiple
	AllowAnonymous     bool         `gorm:"not null;default:true" json:"allow_anonymous"`
	AllowMultipleVotes bool         `gorm:"not null;default:false" json:"allow_multiple_votes"`
	ExpiresAt          *time.Time   `json:"expires_at,omitempty"`
	TotalVotes         int          `gorm:"not null;default:0" json:"total_votes"`
	Options            []PollOption `gorm:"foreignKey:PollID" json:"options,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// TableName specifies the table name for Poll model
func (Poll) TableName() string {
	return "polls"
}

// statusRank orders statuses for the forward-only transition check
var statusRank = map[string]int{
	PollStatusDraft:    0,
	PollStatusActive:   1,
	PollStatusClosed:   2,
	PollStatusArchived: 3,
}

// ValidStatus reports whether s is a known poll status
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether a poll may move from one status to another.
// Moves are strictly forward; a closed or archived poll never becomes active again.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
