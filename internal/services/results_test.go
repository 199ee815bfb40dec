package services

import (
	"math"
	"testing"

	"pollboard/internal/models"

	"github.com/google/uuid"
)

func makeOptions(votes ...int) []models.PollOption {
	options := make([]models.PollOption, len(votes))
	for i, v := range votes {
		options[i] = models.PollOption{
			ID:        uuid.New(),
			Text:      string(rune('A' + i)),
			Position:  i,
			VoteCount: v,
		}
	}
	return options
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.05
}

func TestComputeResultsPercentagesAndRanking(t *testing.T) {
	results := ComputeResults(makeOptions(10, 8, 3), 21)

	want := []float64{47.6, 38.1, 14.3}
	for i, w := range want {
		if !almostEqual(results.Options[i].Percentage, w) {
			t.Errorf("option %d: expected ~%.1f%%, got %.2f%%", i, w, results.Options[i].Percentage)
		}
	}

	// Already descending: ranking keeps the order
	for i, wantText := range []string{"A", "B", "C"} {
		if results.Options[i].Text != wantText {
			t.Errorf("rank %d: expected %s, got %s", i+1, wantText, results.Options[i].Text)
		}
		if results.Options[i].Rank != i+1 {
			t.Errorf("option %s: expected rank %d, got %d", wantText, i+1, results.Options[i].Rank)
		}
	}

	// Gap of 2 with more than 5 total votes is a close race
	if !results.CloseRace {
		t.Error("expected close-race flag for gap 2 with 21 votes")
	}
}

func TestComputeResultsSortsDescendingStable(t *testing.T) {
	results := ComputeResults(makeOptions(3, 8, 8, 10), 29)

	wantOrder := []string{"D", "B", "C", "A"}
	for i, want := range wantOrder {
		if results.Options[i].Text != want {
			t.Errorf("rank %d: expected %s, got %s (tie must keep encounter order)", i+1, want, results.Options[i].Text)
		}
	}
}

func TestComputeResultsZeroVotes(t *testing.T) {
	results := ComputeResults(makeOptions(0, 0), 0)

	for _, opt := range results.Options {
		if opt.Percentage != 0 {
			t.Errorf("expected 0%% with no votes, got %.2f", opt.Percentage)
		}
	}
	if results.CloseRace {
		t.Error("no close race without votes")
	}
	if results.Participation != "No votes yet" {
		t.Errorf("expected %q, got %q", "No votes yet", results.Participation)
	}
}

func TestComputeResultsConsensusLabels(t *testing.T) {
	tests := []struct {
		name  string
		votes []int
		total int
		want  string
	}{
		{"strong consensus", []int{75, 15, 10}, 100, ConsensusStrong},
		{"clear preference", []int{55, 30, 15}, 100, ConsensusClear},
		{"close race", []int{4, 3, 2}, 9, ConsensusClose},
		{"diverse views", []int{40, 35, 25}, 100, ConsensusDiverse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := ComputeResults(makeOptions(tt.votes...), tt.total)
			if results.Consensus != tt.want {
				t.Errorf("expected %q, got %q", tt.want, results.Consensus)
			}
		})
	}
}

func TestComputeResultsCloseRaceNeedsEnoughVotes(t *testing.T) {
	// Gap 1 but only 5 votes total: too early to call it close
	results := ComputeResults(makeOptions(3, 2), 5)
	if results.CloseRace {
		t.Error("close race must require more than 5 total votes")
	}

	results = ComputeResults(makeOptions(4, 2), 6)
	if !results.CloseRace {
		t.Error("expected close race for gap 2 with 6 votes")
	}

	results = ComputeResults(makeOptions(5, 1), 6)
	if results.CloseRace {
		t.Error("gap 4 is not a close race")
	}
}

func TestComputeResultsAverageAndParticipation(t *testing.T) {
	results := ComputeResults(makeOptions(30, 20, 10), 60)

	if !almostEqual(results.AverageVotes, 20) {
		t.Errorf("expected average 20, got %.2f", results.AverageVotes)
	}
	if results.Participation != "High participation" {
		t.Errorf("expected high participation, got %q", results.Participation)
	}

	if got := ComputeResults(makeOptions(3, 2), 5).Participation; got != "Getting started" {
		t.Errorf("expected %q, got %q", "Getting started", got)
	}
	if got := ComputeResults(makeOptions(20, 15), 35).Participation; got != "Good engagement" {
		t.Errorf("expected %q, got %q", "Good engagement", got)
	}
}
