package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, arcade cabinet on a navy background
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
	ArcadePink   = lipgloss.Color("#EC4899")
)

// Rank badges
var (
	RankS = lipgloss.Color("#FACC15") // Gold
	RankA = lipgloss.Color("#22D3EE")
	RankB = lipgloss.Color("#22C55E")
	RankC = lipgloss.Color("#94A3B8")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(ArcadeYellow).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Fever = lipgloss.NewStyle().
		Foreground(ArcadePink).
		Bold(true).
		Blink(true)
)

// RankColor returns the badge color for a rank letter.
func RankColor(rank string) lipgloss.Style {
	c := TextDim
	switch rank {
	case "S":
		c = RankS
	case "A":
		c = RankA
	case "B":
		c = RankB
	case "C":
		c = RankC
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
