// Package session runs one play session: it builds the question queue for
// a mode, scores answers, writes the answer log and review state, and
// produces the end-of-run summary.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/spacedrep"
	"github.com/abhisek/closer/internal/store"
	"github.com/abhisek/closer/internal/survival"
)

// ErrSessionOver is returned when answering after the session ended.
var ErrSessionOver = errors.New("session is over")

// ErrNotActive is returned when answering while feedback is shown.
var ErrNotActive = errors.New("no question is waiting for an answer")

// QuestionLimit returns the answer window for the current question. In
// the survival mode the window shrinks with combo and level. Vocabulary
// cards are answered in a shorter window than grammar cards.
func QuestionLimit(state *SessionState) time.Duration {
	if state.Clock != nil {
		return state.Clock.BarDuration()
	}
	card := state.CurrentCard()
	return state.Scoring.QuestionLimit(card != nil && card.Type == content.TypeVocabulary)
}

// Stunned reports whether input is locked after a wrong survival answer.
func Stunned(state *SessionState, now time.Time) bool {
	return state.Clock != nil && state.Clock.Stunned(now)
}

// HandleAnswer grades choice against the current card. A survival answer
// given while stunned is ignored and returns (nil, nil).
func HandleAnswer(ctx context.Context, state *SessionState, choice int, responseTime time.Duration, now time.Time) (*AnswerOutcome, error) {
	if Stunned(state, now) {
		return nil, nil
	}
	return record(ctx, state, choice, responseTime, now)
}

// HandleTimeout records the current question as unanswered. It counts as
// a wrong answer everywhere except the survival clock, which applies the
// smaller skip penalty.
func HandleTimeout(ctx context.Context, state *SessionState, now time.Time) (*AnswerOutcome, error) {
	return record(ctx, state, -1, QuestionLimit(state), now)
}

func record(ctx context.Context, state *SessionState, choice int, responseTime time.Duration, now time.Time) (*AnswerOutcome, error) {
	if state.Phase == PhaseEnded {
		return nil, ErrSessionOver
	}
	if state.Phase != PhaseActive {
		return nil, ErrNotActive
	}
	card := state.CurrentCard()

	timedOut := choice < 0
	correct := !timedOut && card.IsCorrect(choice)
	category := card.Category
	if category == "" {
		category = content.DefaultCategory
	}

	out := &AnswerOutcome{
		CardID:       card.ID,
		Category:     category,
		Choice:       choice,
		CorrectIndex: card.CorrectIndex,
		Correct:      correct,
		TimedOut:     timedOut,
		ResponseTime: responseTime,
	}

	// Review state is the only write whose failure aborts the answer.
	if state.Mode() == ModeVocab {
		rs, err := state.Scheduler.RecordReview(ctx, state.LearnerID, card.ID, correct, responseTime, now)
		if err != nil {
			return nil, fmt.Errorf("record review: %w", err)
		}
		out.Review = rs
	}

	if state.Clock != nil {
		applyClock(state, out, now)
	} else {
		applyScore(state, card, out)
	}

	state.TotalQuestions++
	if correct {
		state.TotalCorrect++
	}
	state.Elapsed += responseTime
	state.recordCategory(category, correct)
	state.Last = out
	state.Phase = PhaseFeedback
	if state.Clock != nil && state.Clock.Expired() {
		state.Phase = PhaseEnded
	}

	if state.Mode().LogsAnswers() {
		err := state.Answers.AppendAnswer(ctx, store.AnswerRecord{
			LearnerID:    state.LearnerID,
			CardID:       card.ID,
			Category:     category,
			Correct:      correct,
			ResponseTime: responseTime,
			AnsweredAt:   now,
		})
		if err != nil {
			state.Logger.Warn("failed to append answer", "card_id", card.ID, "error", err)
		}
	}

	return out, nil
}

// applyScore scores a non-survival answer. The combo multiplier uses the
// streak built before this answer.
func applyScore(state *SessionState, card *content.Card, out *AnswerOutcome) {
	if out.Correct {
		rate := state.Scoring.RemainingRate(out.ResponseTime, card.Type == content.TypeVocabulary)
		out.Points = state.Scoring.ScoreCard(card.Rarity(), state.Combo, rate)
		state.Score += out.Points
		state.Combo++
		state.MaxCombo = max(state.MaxCombo, state.Combo)
	} else {
		state.Combo = 0
	}
	out.Combo = state.Combo
}

func applyClock(state *SessionState, out *AnswerOutcome, now time.Time) {
	var ev survival.Event
	switch {
	case out.TimedOut:
		ev = state.Clock.Skip()
	case out.Correct:
		ev = state.Clock.Correct()
	default:
		ev = state.Clock.Wrong(now)
	}
	out.Clock = ev
	out.Points = int64(ev.Points)
	state.Score = int64(state.Clock.Points())
	state.Combo = state.Clock.Combo()
	state.MaxCombo = state.Clock.MaxCombo()
	out.Combo = state.Combo
}

// Advance moves past the feedback phase to the next question. It returns
// false once the session has ended. The survival queue wraps around
// until the clock expires.
func Advance(state *SessionState) bool {
	if state.Phase == PhaseEnded {
		return false
	}
	state.Current++
	if state.Clock == nil && state.Current >= len(state.Plan.Cards) {
		state.Phase = PhaseEnded
		return false
	}
	state.Phase = PhaseActive
	return true
}

// Tick advances the survival clock by delta. It returns true when the
// session has ended. Other modes are untouched.
func Tick(state *SessionState, delta time.Duration) bool {
	if state.Clock == nil || state.Phase == PhaseEnded {
		return state.Phase == PhaseEnded
	}
	if state.Clock.Tick(delta) == survival.StateExpired {
		state.Phase = PhaseEnded
	}
	return state.Phase == PhaseEnded
}

// ReviewLoader returns a func that fetches the stored review state of the
// current card, or nil outside the review mode. The func holds copies of
// everything it reads, so it may run while state keeps changing.
func ReviewLoader(state *SessionState) func(context.Context) (*spacedrep.ReviewState, error) {
	card := state.CurrentCard()
	if state.Mode() != ModeVocab || card == nil || state.Scheduler == nil {
		return nil
	}
	sched, learnerID, cardID := state.Scheduler, state.LearnerID, card.ID
	return func(ctx context.Context) (*spacedrep.ReviewState, error) {
		return sched.Get(ctx, learnerID, cardID)
	}
}
