package models

import (
	"time"

	"github.com/google/uuid"
)

// PollBookmark marks a poll saved by a user, at most once per (user, poll)
type PollBookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_poll" json:"user_id"`
	PollID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_poll" json:"poll_id"`
	Poll      *Poll     `gorm:"foreignKey:PollID" json:"poll,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for PollBookmark model
func (PollBookmark) TableName() string {
	return "poll_bookmarks"
}
