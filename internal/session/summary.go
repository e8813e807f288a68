package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/closer/internal/scoring"
	"github.com/abhisek/closer/internal/store"
	"github.com/abhisek/closer/internal/survival"
)

// SessionSummary is the end-of-run report.
type SessionSummary struct {
	RunID          string
	Mode           Mode
	Level          survival.Level
	Score          int64
	MaxCombo       int
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Elapsed        time.Duration
	Rank           scoring.Rank
	Categories     []CategoryResult
	WeakCategories []string

	// Saved is set when the run was written to the leaderboard.
	Saved bool
}

// BuildSummary computes the summary of state without persisting anything.
// Survival runs carry no rank.
func BuildSummary(state *SessionState) *SessionSummary {
	sum := &SessionSummary{
		RunID:          state.RunID,
		Mode:           state.Mode(),
		Score:          state.Score,
		MaxCombo:       state.MaxCombo,
		TotalQuestions: state.TotalQuestions,
		TotalCorrect:   state.TotalCorrect,
		Accuracy:       state.Accuracy(),
		Elapsed:        state.Elapsed,
		Categories:     state.CategoryResults(),
		WeakCategories: state.Plan.WeakCategories,
	}
	if state.Clock != nil {
		sum.Level = state.Clock.Level()
	} else {
		sum.Rank = state.Scoring.Rank(sum.Score, sum.MaxCombo, sum.Accuracy)
	}
	return sum
}

// Finish ends the session and saves the run for leaderboard modes. A run
// with no answers is not saved.
func Finish(ctx context.Context, state *SessionState, now time.Time) (*SessionSummary, error) {
	state.Phase = PhaseEnded
	sum := BuildSummary(state)

	if !state.Mode().SavesRun() || sum.TotalQuestions == 0 {
		return sum, nil
	}

	err := state.Runs.SaveRun(ctx, store.RunRecord{
		ID:          sum.RunID,
		LearnerID:   state.LearnerID,
		Mode:        RunMode(sum.Mode, sum.Level),
		Score:       sum.Score,
		MaxCombo:    sum.MaxCombo,
		CorrectRate: sum.Accuracy,
		Elapsed:     sum.Elapsed,
		Rank:        string(sum.Rank),
		CreatedAt:   now,
	})
	if err != nil {
		return sum, fmt.Errorf("save run: %w", err)
	}
	sum.Saved = true

	state.Logger.Info("run finished",
		"score", sum.Score,
		"max_combo", sum.MaxCombo,
		"accuracy", sum.Accuracy,
		"rank", sum.Rank.String(),
	)
	return sum, nil
}

// RunMode returns the leaderboard key a run of mode at level is saved under.
func RunMode(mode Mode, level survival.Level) string {
	if mode == ModeSurvival {
		return fmt.Sprintf("%s:%s", ModeSurvival, level)
	}
	return string(mode)
}
