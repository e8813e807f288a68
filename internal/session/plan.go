package session

import (
	"fmt"
	"strings"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/survival"
)

// Mode selects how questions are chosen and scored.
type Mode string

const (
	ModeNational Mode = "national"
	ModeForYou   Mode = "forYou"
	ModeVocab    Mode = "vocab"
	ModeSurvival Mode = "survival"
)

// AllModes returns the modes in menu order.
func AllModes() []Mode {
	return []Mode{ModeNational, ModeForYou, ModeVocab, ModeSurvival}
}

// ParseMode accepts a mode name case-insensitively. "for-you" and
// "foryou" both select ModeForYou.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "national":
		return ModeNational, nil
	case "foryou", "for-you", "for_you":
		return ModeForYou, nil
	case "vocab":
		return ModeVocab, nil
	case "survival":
		return ModeSurvival, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// LogsAnswers reports whether answers in this mode go to the answer log.
// The review mode keeps its own per-card state instead.
func (m Mode) LogsAnswers() bool {
	return m != ModeVocab
}

// SavesRun reports whether a finished run is stored for the leaderboard.
func (m Mode) SavesRun() bool {
	return m != ModeVocab
}

// DisplayName returns the menu label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeNational:
		return "National"
	case ModeForYou:
		return "For You"
	case ModeVocab:
		return "Vocab Review"
	case ModeSurvival:
		return "Survival"
	default:
		return string(m)
	}
}

// Plan is the question queue built at session start.
type Plan struct {
	Mode  Mode
	Level survival.Level
	Cards []content.Card

	// WeakCategories is set for ModeForYou when a bias was applied.
	WeakCategories []string

	// Fallback is set for ModeVocab when nothing was due and the first
	// cards of the deck were served instead.
	Fallback bool
}
