// Package scoring implements the SHUN score: rarity base points scaled by
// a combo multiplier and a speed bonus, and the end-of-run rank.
package scoring

import (
	"math"
	"time"

	"github.com/abhisek/closer/internal/balance"
)

// Rank is the milestone awarded for a finished run. The empty rank means
// no milestone was reached.
type Rank string

const (
	RankNone Rank = ""
	RankS    Rank = "S"
	RankA    Rank = "A"
	RankB    Rank = "B"
)

// String returns "-" for RankNone so it prints in tables.
func (r Rank) String() string {
	if r == RankNone {
		return "-"
	}
	return string(r)
}

// Engine computes scores from an explicit balance config. It holds no
// per-run state.
type Engine struct {
	cfg balance.Scoring
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(cfg balance.Scoring) *Engine {
	return &Engine{cfg: cfg}
}

var defaultEngine = NewEngine(balance.DefaultConfig().Scoring)

// ComboMultiplier returns 1 + combo/divisor. It is not capped.
func (e *Engine) ComboMultiplier(combo int) float64 {
	return 1 + float64(combo)/e.cfg.ComboDivisor
}

// SpeedBonus returns 1 + rate×max, with rate clamped to [0, 1].
func (e *Engine) SpeedBonus(remainingRate float64) float64 {
	return 1 + clamp(remainingRate, 0, 1)*e.cfg.MaxSpeedBonus
}

// ScorePerQuestion returns ceil(basePoints × combo multiplier × speed bonus).
func (e *Engine) ScorePerQuestion(basePoints, combo int, remainingRate float64) int64 {
	return int64(math.Ceil(float64(basePoints) * e.ComboMultiplier(combo) * e.SpeedBonus(remainingRate)))
}

// ScoreCard scores a correct answer on a card of the given rarity.
func (e *Engine) ScoreCard(r Rarity, combo int, remainingRate float64) int64 {
	return e.ScorePerQuestion(BasePointsFor(e.cfg.BasePoints, r), combo, remainingRate)
}

// RemainingRate returns the unused fraction of the answer window.
func (e *Engine) RemainingRate(responseTime time.Duration, vocabulary bool) float64 {
	return RemainingRate(responseTime, e.QuestionLimit(vocabulary))
}

// QuestionLimit returns the answer window. Vocabulary cards get the
// shorter VocabQuestionLimit when one is set.
func (e *Engine) QuestionLimit(vocabulary bool) time.Duration {
	if vocabulary && e.cfg.VocabQuestionLimit > 0 {
		return e.cfg.VocabQuestionLimit
	}
	return e.cfg.QuestionLimit
}

// Rank classifies a run. Tiers are checked from the highest down.
func (e *Engine) Rank(totalScore int64, maxCombo int, correctRate float64) Rank {
	switch {
	case e.cfg.RankS.Met(totalScore, maxCombo, correctRate):
		return RankS
	case e.cfg.RankA.Met(totalScore, maxCombo, correctRate):
		return RankA
	case e.cfg.RankB.Met(totalScore, maxCombo, correctRate):
		return RankB
	default:
		return RankNone
	}
}

// RemainingRate returns (limit - elapsed) / limit clamped to [0, 1].
func RemainingRate(elapsed, limit time.Duration) float64 {
	if limit <= 0 {
		return 0
	}
	return clamp(float64(limit-elapsed)/float64(limit), 0, 1)
}

// ComboMultiplier uses the default balance.
func ComboMultiplier(combo int) float64 { return defaultEngine.ComboMultiplier(combo) }

// SpeedBonus uses the default balance.
func SpeedBonus(remainingRate float64) float64 { return defaultEngine.SpeedBonus(remainingRate) }

// ScorePerQuestion uses the default balance.
func ScorePerQuestion(basePoints, combo int, remainingRate float64) int64 {
	return defaultEngine.ScorePerQuestion(basePoints, combo, remainingRate)
}

// RankFromRun uses the default balance.
func RankFromRun(totalScore int64, maxCombo int, correctRate float64) Rank {
	return defaultEngine.Rank(totalScore, maxCombo, correctRate)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
