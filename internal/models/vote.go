package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is an immutable record linking a voter (or anonymous marker) to one
// option of one poll. UserID is nil for anonymous votes; VoterIP and
// UserAgent are best-effort fingerprint metadata, not a strong identity.
type Vote struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PollID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"poll_id"`
	OptionID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"option_id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	VoterIP   *string    `gorm:"size:45" json:"voter_ip,omitempty"`
	UserAgent *string    `gorm:"size:255" json:"user_agent,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for Vote model
func (Vote) TableName() string {
	return "votes"
}
