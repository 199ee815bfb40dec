package services

import (
	"context"
	"errors"

	"pollboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService aggregates per-user activity: stats, voting history, bookmarks
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserStats summarizes a user's activity across the system
type UserStats struct {
	PollsCreated       int64 `json:"polls_created"`
	VotesCast          int64 `json:"votes_cast"`
	TotalVotesReceived int64 `json:"total_votes_received"`
	BookmarksCount     int64 `json:"bookmarks_count"`
}

// GetUserStats counts a user's polls, votes, received votes and bookmarks
func (s *UserService) GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	stats := &UserStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Poll{}).Where("creator_id = ?", userID).Count(&stats.PollsCreated).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Vote{}).Where("user_id = ?", userID).Count(&stats.VotesCast).Error; err != nil {
		return nil, err
	}

	var received *int64
	if err := db.Model(&models.Poll{}).
		Where("creator_id = ?", userID).
		Select("SUM(total_votes)").
		Scan(&received).Error; err != nil {
		return nil, err
	}
	if received != nil {
		stats.TotalVotesReceived = *received
	}

	if err := db.Model(&models.PollBookmark{}).Where("user_id = ?", userID).Count(&stats.BookmarksCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// VotingHistoryItem is one past vote with the poll and chosen option attached
type VotingHistoryItem struct {
	Vote   models.Vote        `json:"vote"`
	Poll   *models.Poll       `json:"poll,omitempty"`
	Option *models.PollOption `json:"selected_option,omitempty"`
}

// VotingHistory is a paginated slice of a user's past votes
type VotingHistory struct {
	Votes   []VotingHistoryItem `json:"votes"`
	Total   int64               `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
	HasMore bool                `json:"hasMore"`
}

// GetVotingHistory retrieves a user's votes newest-first with poll context
func (s *UserService) GetVotingHistory(ctx context.Context, userID uuid.UUID, limit, offset int) (*VotingHistory, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Vote{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var votes []models.Vote
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&votes).Error; err != nil {
		return nil, err
	}

	history := &VotingHistory{
		Votes:   make([]VotingHistoryItem, 0, len(votes)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(votes)) < total,
	}

	for _, vote := range votes {
		item := VotingHistoryItem{Vote: vote}

		var poll models.Poll
		if err := db.Preload("Creator").Where("id = ?", vote.PollID).First(&poll).Error; err == nil {
			item.Poll = &poll
		}

		var option models.PollOption
		if err := db.Where("id = ?", vote.OptionID).First(&option).Error; err == nil {
			item.Option = &option
		}

		history.Votes = append(history.Votes, item)
	}

	return history, nil
}

// BookmarkPoll saves a poll for a user, at most once
func (s *UserService) BookmarkPoll(ctx context.Context, userID, pollID uuid.UUID) (*models.PollBookmark, error) {
	db := s.db.WithContext(ctx)

	var poll models.Poll
	if err := db.Where("id = ?", pollID).First(&poll).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}

	var existing models.PollBookmark
	err := db.Where("user_id = ? AND poll_id = ?", userID, pollID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyBookmarked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bookmark := &models.PollBookmark{
		ID:     uuid.New(),
		UserID: userID,
		PollID: pollID,
	}
	if err := db.Create(bookmark).Error; err != nil {
		return nil, err
	}

	return bookmark, nil
}

// RemoveBookmark deletes a user's bookmark on a poll
func (s *UserService) RemoveBookmark(ctx context.Context, userID, pollID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND poll_id = ?", userID, pollID).
		Delete(&models.PollBookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// ListBookmarks retrieves a user's bookmarked polls newest-first
func (s *UserService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]models.PollBookmark, error) {
	var bookmarks []models.PollBookmark
	err := s.db.WithContext(ctx).
		Preload("Poll").
		Preload("Poll.Creator").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}
