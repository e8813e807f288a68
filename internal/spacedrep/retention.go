package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/closer/internal/balance"
)

// ComputeRetention returns R = e^(-t/S) for elapsed days t and memory
// strength S. Non-positive strength yields 0.
func ComputeRetention(elapsedDays, strength float64) float64 {
	if strength <= 0 {
		return 0
	}
	return math.Exp(-elapsedDays / strength)
}

// Outcome is the result of applying one review answer to a card.
type Outcome struct {
	Stage    Stage
	Interval time.Duration
	Strength float64
}

// Model applies review outcomes to stage, interval and strength.
type Model struct {
	cfg balance.Retention
}

// NewModel creates a retention model with the given balance settings.
func NewModel(cfg balance.Retention) *Model {
	return &Model{cfg: cfg}
}

// Config returns the balance settings the model was built with.
func (m *Model) Config() balance.Retention {
	return m.cfg
}

// IntervalForStage returns the ladder interval for s.
func (m *Model) IntervalForStage(s Stage) time.Duration {
	return IntervalForStage(m.cfg, s)
}

// IsFast reports whether a response time earns the two-stage jump.
func (m *Model) IsFast(responseTime time.Duration) bool {
	return responseTime < m.cfg.FastAnswer
}

// OnCorrect advances a card after a correct answer. The prior interval is
// the ladder interval of the current stage; it grows by a single factor
// regardless of how many stages were gained.
func (m *Model) OnCorrect(stage Stage, strength float64, fast bool) Outcome {
	stage = ClampStage(int(stage))

	step := 1
	if fast {
		step = 2
	}
	next := min(MaxStage, stage+Stage(step))

	interval := time.Duration(float64(m.IntervalForStage(stage)) * m.cfg.IntervalGrowth)
	if next >= MaxStage {
		interval = m.cfg.GraduatedInterval
	}

	return Outcome{
		Stage:    next,
		Interval: interval,
		Strength: math.Min(m.cfg.MaxStrength, strength+m.cfg.StrengthStep),
	}
}

// OnMiss resets a card after a wrong answer or timeout.
func (m *Model) OnMiss() Outcome {
	return Outcome{
		Stage:    StageNew,
		Interval: m.cfg.MissInterval,
		Strength: m.cfg.BaselineStrength,
	}
}

// Apply folds one answer into prev and returns the new state. A nil or
// invalid prev is treated as a card that was never reviewed.
func (m *Model) Apply(prev *ReviewState, learnerID, cardID string, correct bool, responseTime time.Duration, now time.Time) *ReviewState {
	stage, strength, count := StageNew, 0.0, 0
	if prev.valid() {
		stage, strength = prev.Stage, prev.MemoryStrength
	}
	if prev != nil && prev.CorrectCount > 0 {
		count = prev.CorrectCount
	}

	var out Outcome
	if correct {
		out = m.OnCorrect(stage, strength, m.IsFast(responseTime))
		count++
	} else {
		out = m.OnMiss()
	}

	return &ReviewState{
		LearnerID:      learnerID,
		CardID:         cardID,
		Stage:          out.Stage,
		LastReviewedAt: now,
		NextReviewAt:   now.Add(out.Interval),
		MemoryStrength: out.Strength,
		CorrectCount:   count,
	}
}
