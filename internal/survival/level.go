// Package survival implements the countdown clock of survival mode: a time
// budget that decays while the learner plays, grows with correct answers
// and shrinks with misses.
package survival

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/closer/internal/balance"
)

// Level selects how long a question bar takes to reach the edge.
type Level string

const (
	LevelRookie Level = "rookie"
	LevelAce    Level = "ace"
	LevelLegend Level = "legend"
)

// AllLevels returns the levels from easiest to hardest.
func AllLevels() []Level {
	return []Level{LevelRookie, LevelAce, LevelLegend}
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelRookie, LevelAce, LevelLegend:
		return l, nil
	case "":
		return LevelRookie, nil
	default:
		return "", fmt.Errorf("unknown survival level %q", s)
	}
}

// Edge returns the base time for a question bar to cross the screen.
func (l Level) Edge(cfg balance.Survival) time.Duration {
	switch l {
	case LevelAce:
		return cfg.AceEdge
	case LevelLegend:
		return cfg.LegendEdge
	default:
		return cfg.RookieEdge
	}
}

// DisplayName returns the level name as shown in menus.
func (l Level) DisplayName() string {
	switch l {
	case LevelAce:
		return "Ace"
	case LevelLegend:
		return "Legend"
	default:
		return "Rookie"
	}
}
