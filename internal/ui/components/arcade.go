package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/ui/theme"
)

// Arcade sections never grow past this width, however wide the terminal.
const (
	maxContentWidth = 60
	minContentWidth = 20

	// cabinet border (2) + inner padding (4)
	cabinetChrome = 6
)

// ContentWidth returns the inner width every arcade section is rendered
// at, so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-cabinetChrome, minContentWidth), maxContentWidth)
}

var cabinet = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(theme.Primary).
	Align(lipgloss.Center, lipgloss.Center)

// CabinetFrame centres content inside the double-line cabinet border that
// fills width x height.
func CabinetFrame(content string, width, height int) string {
	return cabinet.Width(width - 2).Height(height - 2).Render(content)
}

var card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Align(lipgloss.Center).
	Padding(1, 2)

// ArcadeCard boxes content at content width cw.
func ArcadeCard(content string, cw int) string {
	return card.Width(cw - 2).Render(content)
}

// ButtonState selects how an ArcadeButton is drawn.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonSelected
	// ButtonLocked is an option that cannot be started right now, such
	// as a play mode once the day's free play is spent.
	ButtonLocked
)

var buttonBase = lipgloss.NewStyle().
	Align(lipgloss.Center).
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

var buttonStyles = map[ButtonState]lipgloss.Style{
	ButtonIdle: buttonBase.
		Foreground(theme.Text).
		BorderForeground(theme.Border),
	ButtonSelected: buttonBase.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow),
	ButtonLocked: buttonBase.
		Foreground(theme.TextDim).
		Strikethrough(true).
		BorderForeground(theme.Border),
}

// ArcadeButton renders a bordered menu button. The selected button gets
// a cursor even when locked, so the learner can see where they are.
func ArcadeButton(label string, state ButtonState, selected bool, width int) string {
	if selected {
		label = "▸ " + label
		if state != ButtonLocked {
			state = ButtonSelected
		}
	}
	return buttonStyles[state].Width(width).Render(label)
}
