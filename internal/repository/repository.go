package repository

import (
	"context"

	"pollboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreatePoll creates a new poll row
func (r *Repository) CreatePoll(ctx context.Context, poll *models.Poll) error {
	return r.db.WithContext(ctx).Create(poll).Error
}

// CreatePollOptions creates the option rows for a poll in one batch
func (r *Repository) CreatePollOptions(ctx context.Context, options []models.PollOption) error {
	return r.db.WithContext(ctx).Create(&options).Error
}

// DeletePoll deletes a poll and everything hanging off it
func (r *Repository) DeletePoll(ctx context.Context, pollID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", pollID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&models.PollOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&models.PollBookmark{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", pollID).Delete(&models.Poll{}).Error
	})
}

// GetPollByID retrieves a poll by ID without relations
func (r *Repository) GetPollByID(ctx context.Context, pollID uuid.UUID) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).Where("id = ?", pollID).First(&poll).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// GetPollWithDetails retrieves a poll with creator, category and ordered options
func (r *Repository) GetPollWithDetails(ctx context.Context, pollID uuid.UUID) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Category").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", pollID).
		First(&poll).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// PollFilter narrows ListPolls results
type PollFilter struct {
	Status     string
	CategoryID *uuid.UUID
	CreatorID  *uuid.UUID
	Limit      int
	Offset     int
}

// ListPolls retrieves polls newest-first with optional filters
func (r *Repository) ListPolls(ctx context.Context, filter PollFilter) ([]models.Poll, error) {
	query := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Category").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var polls []models.Poll
	err := query.Limit(limit).Offset(filter.Offset).Find(&polls).Error
	if err != nil {
		return nil, err
	}
	return polls, nil
}

// UpdatePollStatus writes a new status for a poll
func (r *Repository) UpdatePollStatus(ctx context.Context, pollID uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Poll{}).
		Where("id = ?", pollID).
		Update("status", status).Error
}

// GetUserVotes retrieves the votes a user has cast on a poll
func (r *Repository) GetUserVotes(ctx context.Context, pollID, userID uuid.UUID) ([]models.Vote, error) {
	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// ListCategories retrieves all categories ordered by name
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
