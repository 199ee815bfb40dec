package services

import (
	"sort"

	"pollboard/internal/models"

	"github.com/google/uuid"
)

// Consensus labels derived from the leader's vote share
const (
	ConsensusStrong  = "Strong consensus"
	ConsensusClear   = "Clear preference"
	ConsensusClose   = "Close race"
	ConsensusDiverse = "Diverse views"
)

// OptionResult is one option's share of the vote, ranked 1..n
type OptionResult struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Votes      int       `json:"votes"`
	Percentage float64   `json:"percentage"`
	Rank       int       `json:"rank"`
}

// PollResults is the derived view of a poll's vote distribution. It is
// recomputed on every read and never persisted.
type PollResults struct {
	Options       []OptionResult `json:"options"`
	TotalVotes    int            `json:"total_votes"`
	AverageVotes  float64        `json:"average_votes"`
	CloseRace     bool           `json:"close_race"`
	Consensus     string         `json:"consensus"`
	Participation string         `json:"participation"`
}

// ComputeResults aggregates raw option counts into percentages, a stable
// descending ranking and the summary labels shown on the results screen.
func ComputeResults(options []models.PollOption, totalVotes int) PollResults {
	results := PollResults{
		Options:    make([]OptionResult, len(options)),
		TotalVotes: totalVotes,
	}

	for i, opt := range options {
		results.Options[i] = OptionResult{
			ID:         opt.ID,
			Text:       opt.Text,
			Votes:      opt.VoteCount,
			Percentage: percentage(opt.VoteCount, totalVotes),
		}
	}

	// Stable sort: ties keep encounter order
	sort.SliceStable(results.Options, func(i, j int) bool {
		return results.Options[i].Votes > results.Options[j].Votes
	})
	for i := range results.Options {
		results.Options[i].Rank = i + 1
	}

	if len(options) > 0 {
		results.AverageVotes = float64(totalVotes) / float64(len(options))
	}

	// Close race: the top two are within 2 votes and enough votes are in
	// for the gap to mean something
	if len(results.Options) >= 2 && totalVotes > 5 {
		gap := results.Options[0].Votes - results.Options[1].Votes
		results.CloseRace = gap <= 2
	}

	results.Consensus = consensusLabel(results)
	results.Participation = participationLabel(totalVotes)

	return results
}

func percentage(votes, totalVotes int) float64 {
	if totalVotes <= 0 {
		return 0
	}
	return float64(votes) / float64(totalVotes) * 100
}

func consensusLabel(results PollResults) string {
	leaderShare := 0.0
	if len(results.Options) > 0 {
		leaderShare = results.Options[0].Percentage
	}

	switch {
	case leaderShare >= 70:
		return ConsensusStrong
	case leaderShare >= 50:
		return ConsensusClear
	case results.CloseRace:
		return ConsensusClose
	default:
		return ConsensusDiverse
	}
}

func participationLabel(totalVotes int) string {
	switch {
	case totalVotes == 0:
		return "No votes yet"
	case totalVotes < 10:
		return "Getting started"
	case totalVotes < 50:
		return "Good engagement"
	default:
		return "High participation"
	}
}
