package spacedrep

import (
	"time"

	"github.com/abhisek/closer/internal/balance"
)

// Stage is a discrete memory level from 1 (new) to 5 (hall of fame).
type Stage int

const (
	StageNew Stage = iota + 1
	StageStaying
	StageSettling
	StageBrainAsset
	StageHallOfFame
)

// MinStage and MaxStage bound every stored stage.
const (
	MinStage = StageNew
	MaxStage = StageHallOfFame
)

// ClampStage maps any integer into the 1..5 ladder.
func ClampStage(n int) Stage {
	switch {
	case n < int(MinStage):
		return MinStage
	case n > int(MaxStage):
		return MaxStage
	default:
		return Stage(n)
	}
}

// Valid reports whether s is on the ladder.
func (s Stage) Valid() bool {
	return s >= MinStage && s <= MaxStage
}

// Label returns the in-game label shown on flashcards.
func (s Stage) Label() string {
	switch ClampStage(int(s)) {
	case StageNew:
		return "新規"
	case StageStaying:
		return "滞在中"
	case StageSettling:
		return "定着中"
	case StageBrainAsset:
		return "脳内資産"
	default:
		return "殿堂入り"
	}
}

// DisplayName returns an English label for the stage.
func (s Stage) DisplayName() string {
	switch ClampStage(int(s)) {
	case StageNew:
		return "New"
	case StageStaying:
		return "Staying"
	case StageSettling:
		return "Settling"
	case StageBrainAsset:
		return "Brain Asset"
	default:
		return "Hall of Fame"
	}
}

// IntervalForStage returns the review spacing for a stage under cfg.
// Out-of-range stages are clamped.
func IntervalForStage(cfg balance.Retention, s Stage) time.Duration {
	s = ClampStage(int(s))
	mult := cfg.StageMultipliers[int(s)-1]
	return time.Duration(float64(cfg.StageBase) * mult)
}
