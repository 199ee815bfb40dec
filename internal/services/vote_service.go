package services

import (
	"context"
	"errors"
	"log"

	"pollboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteService validates and records ballots. Every accepted vote and its two
// counter increments are one storage transaction: either all of it lands or
// none of it does.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// VoterContext identifies who is voting. UserID nil means anonymous; IP and
// user agent are recorded as abuse-mitigation metadata only.
type VoterContext struct {
	UserID    *uuid.UUID
	IP        string
	UserAgent string
}

// CastVote records one vote for an option of an active poll.
//
// The poll row is locked for the duration of the transaction so the
// duplicate check and the counter increments cannot interleave with a
// concurrent vote on the same poll. Counters are incremented SQL-side
// (vote_count = vote_count + 1), never read-modify-write in Go.
func (s *VoteService) CastVote(ctx context.Context, voter VoterContext, pollID, optionID uuid.UUID) (*models.Vote, error) {
	var vote *models.Vote

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poll models.Poll
		query := tx.Where("id = ?", pollID)
		if tx.Dialector.Name() == "postgres" {
			// SQLite serializes writers on its own; row locks are a Postgres concern
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(&poll).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPollNotFound
			}
			return err
		}

		if poll.Status != models.PollStatusActive {
			return ErrPollNotActive
		}

		if !poll.AllowAnonymous && voter.UserID == nil {
			return ErrUnauthenticated
		}

		var option models.PollOption
		if err := tx.Where("id = ? AND poll_id = ?", optionID, pollID).First(&option).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOptionNotFound
			}
			return err
		}

		// Duplicate check per vote cardinality. Anonymous votes are not
		// deduplicated; the fingerprint metadata is not a strong identity.
		if voter.UserID != nil {
			var count int64
			dupQuery := tx.Model(&models.Vote{}).Where("poll_id = ? AND user_id = ?", pollID, *voter.UserID)
			if poll.VoteType == models.VoteTypeMultiple {
				dupQuery = dupQuery.Where("option_id = ?", optionID)
			}
			if err := dupQuery.Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrAlreadyVoted
			}
		}

		vote = &models.Vote{
			ID:       uuid.New(),
			PollID:   pollID,
			OptionID: optionID,
			UserID:   voter.UserID,
		}
		if voter.IP != "" {
			vote.VoterIP = &voter.IP
		}
		if voter.UserAgent != "" {
			vote.UserAgent = &voter.UserAgent
		}

		if err := tx.Create(vote).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.PollOption{}).
			Where("id = ?", optionID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + 1")).Error; err != nil {
			return err
		}

		return tx.Model(&models.Poll{}).
			Where("id = ?", pollID).
			UpdateColumn("total_votes", gorm.Expr("total_votes + 1")).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrPollNotFound),
			errors.Is(err, ErrPollNotActive),
			errors.Is(err, ErrUnauthenticated),
			errors.Is(err, ErrOptionNotFound),
			errors.Is(err, ErrAlreadyVoted):
			return nil, err
		}
		log.Printf("Vote error: %v", err)
		return nil, ErrVotePersistence
	}

	return vote, nil
}
