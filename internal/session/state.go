package session

import (
	"log/slog"
	"time"

	"github.com/abhisek/closer/internal/balance"
	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/scoring"
	"github.com/abhisek/closer/internal/spacedrep"
	"github.com/abhisek/closer/internal/store"
	"github.com/abhisek/closer/internal/survival"
	"github.com/google/uuid"
)

// SessionPhase tracks where the session is in its lifecycle.
type SessionPhase int

const (
	PhaseActive   SessionPhase = iota // waiting for an answer
	PhaseFeedback                     // showing the result of the last answer
	PhaseEnded
)

// AnswerOutcome is the result of one answered or timed-out question.
type AnswerOutcome struct {
	CardID       string
	Category     string
	Choice       int // -1 on timeout
	CorrectIndex int
	Correct      bool
	TimedOut     bool
	ResponseTime time.Duration

	// Points awarded for this answer, and the combo after it.
	Points int64
	Combo  int

	// Review is the new spaced repetition state in the review mode.
	Review *spacedrep.ReviewState

	// Clock is the survival clock event in the survival mode.
	Clock survival.Event
}

// Deps are the services a session writes through.
type Deps struct {
	Balance   balance.Config
	Scheduler *spacedrep.Scheduler
	Answers   store.AnswerLogRepo
	Runs      store.RunRepo
	Logger    *slog.Logger
}

// SessionState holds all mutable state for one play session.
type SessionState struct {
	Plan      *Plan
	LearnerID string
	RunID     string

	Current        int
	TotalQuestions int
	TotalCorrect   int
	Score          int64
	Combo          int
	MaxCombo       int
	Elapsed        time.Duration
	StartTime      time.Time
	Phase          SessionPhase

	PerCategory   map[string]*CategoryResult
	categoryOrder []string

	Last  *AnswerOutcome
	Clock *survival.Clock

	// Services.
	Scoring   *scoring.Engine
	Scheduler *spacedrep.Scheduler
	Answers   store.AnswerLogRepo
	Runs      store.RunRepo
	Logger    *slog.Logger
}

// NewSessionState creates the state for plan. The survival mode gets a
// fresh clock at the plan's level.
func NewSessionState(plan *Plan, learnerID string, deps Deps, now time.Time) *SessionState {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	state := &SessionState{
		Plan:        plan,
		LearnerID:   learnerID,
		RunID:       uuid.NewString(),
		StartTime:   now,
		Phase:       PhaseActive,
		PerCategory: make(map[string]*CategoryResult),
		Scoring:     scoring.NewEngine(deps.Balance.Scoring),
		Scheduler:   deps.Scheduler,
		Answers:     deps.Answers,
		Runs:        deps.Runs,
	}
	state.Logger = logger.With("run_id", state.RunID, "mode", string(plan.Mode))

	if plan.Mode == ModeSurvival {
		state.Clock = survival.NewClock(deps.Balance.Survival, plan.Level)
	}
	if len(plan.Cards) == 0 {
		state.Phase = PhaseEnded
	}
	return state
}

// Mode returns the session's mode.
func (s *SessionState) Mode() Mode {
	return s.Plan.Mode
}

// CurrentCard returns the card being asked, or nil once the session ended.
func (s *SessionState) CurrentCard() *content.Card {
	if s.Phase == PhaseEnded || len(s.Plan.Cards) == 0 {
		return nil
	}
	return &s.Plan.Cards[s.Current%len(s.Plan.Cards)]
}

// Accuracy returns TotalCorrect/TotalQuestions, or 0 before any answer.
func (s *SessionState) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalQuestions)
}

// CategoryResults returns per-category results in first-answered order.
func (s *SessionState) CategoryResults() []CategoryResult {
	out := make([]CategoryResult, 0, len(s.categoryOrder))
	for _, cat := range s.categoryOrder {
		out = append(out, *s.PerCategory[cat])
	}
	return out
}

func (s *SessionState) recordCategory(category string, correct bool) {
	cr, ok := s.PerCategory[category]
	if !ok {
		cr = &CategoryResult{Category: category}
		s.PerCategory[category] = cr
		s.categoryOrder = append(s.categoryOrder, category)
	}
	cr.Record(correct)
}
