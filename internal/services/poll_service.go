package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"pollboard/internal/models"
	"pollboard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxPollOptions bounds how many options a single poll may carry
const MaxPollOptions = 10

// PollStore is the persistence surface the lifecycle manager needs. It is
// an interface so tests can fail individual writes; *repository.Repository
// is the production implementation.
type PollStore interface {
	CreatePoll(ctx context.Context, poll *models.Poll) error
	CreatePollOptions(ctx context.Context, options []models.PollOption) error
	DeletePoll(ctx context.Context, pollID uuid.UUID) error
	GetPollByID(ctx context.Context, pollID uuid.UUID) (*models.Poll, error)
	GetPollWithDetails(ctx context.Context, pollID uuid.UUID) (*models.Poll, error)
	ListPolls(ctx context.Context, filter repository.PollFilter) ([]models.Poll, error)
	UpdatePollStatus(ctx context.Context, pollID uuid.UUID, status string) error
	GetUserVotes(ctx context.Context, pollID, userID uuid.UUID) ([]models.Vote, error)
}

// PollService owns the poll lifecycle: creation, status transitions, deletion
type PollService struct {
	store PollStore
}

func NewPollService(store PollStore) *PollService {
	return &PollService{store: store}
}

// CreatePollInput carries caller-supplied poll data before validation
type CreatePollInput struct {
	Title              string
	Description        string
	CategoryID         *uuid.UUID
	Options            []string
	AllowAnonymous     *bool
	AllowMultipleVotes bool
	ExpiresAt          *time.Time
}

// CreatePoll validates input and persists the poll followed by its options.
// The two inserts are not one transaction: if the options insert fails the
// poll row is deleted again (best-effort). A crash between the two writes can
// leave a poll with zero options; readers treat that as transient.
func (s *PollService) CreatePoll(ctx context.Context, creatorID uuid.UUID, input CreatePollInput) (*models.Poll, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > 100 {
		return nil, ErrTitleTooLong
	}

	var description *string
	if trimmed := strings.TrimSpace(input.Description); trimmed != "" {
		if len(trimmed) > 300 {
			return nil, ErrDescriptionTooLong
		}
		description = &trimmed
	}

	// Blank entries are dropped, not stored
	options := make([]string, 0, len(input.Options))
	for _, opt := range input.Options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > 100 {
			return nil, ErrOptionTooLong
		}
		options = append(options, trimmed)
	}

	if len(options) < 2 {
		return nil, ErrInsufficientOptions
	}
	if len(options) > MaxPollOptions {
		return nil, ErrTooManyOptions
	}

	voteType := models.VoteTypeSingle
	if input.AllowMultipleVotes {
		voteType = models.VoteTypeMultiple
	}

	allowAnonymous := true
	if input.AllowAnonymous != nil {
		allowAnonymous = *input.AllowAnonymous
	}

	poll := &models.Poll{
		ID:                 uuid.New(),
		Title:              title,
		Description:        description,
		CreatorID:          creatorID,
		CategoryID:         input.CategoryID,
		Status:             models.PollStatusActive,
		VoteType:           voteType,
		AllowAnonymous:     allowAnonymous,
		AllowMultipleVotes: input.AllowMultipleVotes,
		ExpiresAt:          input.ExpiresAt,
	}

	if err := s.store.CreatePoll(ctx, poll); err != nil {
		log.Printf("Create poll error: %v", err)
		return nil, ErrPollPersistence
	}

	optionRows := make([]models.PollOption, len(options))
	for i, text := range options {
		optionRows[i] = models.PollOption{
			ID:       uuid.New(),
			PollID:   poll.ID,
			Text:     text,
			Position: i,
		}
	}

	if err := s.store.CreatePollOptions(ctx, optionRows); err != nil {
		log.Printf("Create options error: %v", err)
		// Clean up the poll so no zero-option poll survives this path.
		// The delete is best-effort; its failure is logged, not surfaced.
		if delErr := s.store.DeletePoll(ctx, poll.ID); delErr != nil {
			log.Printf("Compensating delete failed for poll %s: %v", poll.ID, delErr)
		}
		return nil, ErrOptionsPersistence
	}

	return poll, nil
}

// PollView is a poll plus viewer-specific voting state
type PollView struct {
	models.Poll
	HasVoted  bool        `json:"hasVoted"`
	UserVotes []uuid.UUID `json:"userVotes"`
}

// GetPoll retrieves a poll with its relations. When viewerID is non-nil the
// view also says whether that viewer voted and for which options.
func (s *PollService) GetPoll(ctx context.Context, pollID uuid.UUID, viewerID *uuid.UUID) (*PollView, error) {
	poll, err := s.store.GetPollWithDetails(ctx, pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}

	view := &PollView{Poll: *poll, UserVotes: []uuid.UUID{}}

	if viewerID != nil {
		votes, err := s.store.GetUserVotes(ctx, pollID, *viewerID)
		if err != nil {
			return nil, err
		}
		for _, v := range votes {
			view.HasVoted = true
			view.UserVotes = append(view.UserVotes, v.OptionID)
		}
	}

	return view, nil
}

// ListPolls retrieves polls matching the filter, newest first
func (s *PollService) ListPolls(ctx context.Context, filter repository.PollFilter) ([]models.Poll, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	return s.store.ListPolls(ctx, filter)
}

// UpdateStatus moves a poll to a new lifecycle status. Only the owner may
// transition, and only forward: draft -> active -> closed -> archived.
func (s *PollService) UpdateStatus(ctx context.Context, actorID, pollID uuid.UUID, newStatus string) (*models.Poll, error) {
	if !models.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	poll, err := s.store.GetPollByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}

	if poll.CreatorID != actorID {
		return nil, ErrNotOwner
	}

	if !models.CanTransition(poll.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.store.UpdatePollStatus(ctx, pollID, newStatus); err != nil {
		return nil, err
	}

	poll.Status = newStatus
	return poll, nil
}

// DeletePoll removes a poll and its options, votes and bookmarks. Owner only.
func (s *PollService) DeletePoll(ctx context.Context, actorID, pollID uuid.UUID) error {
	poll, err := s.store.GetPollByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPollNotFound
		}
		return err
	}

	if poll.CreatorID != actorID {
		return ErrNotOwner
	}

	return s.store.DeletePoll(ctx, pollID)
}
