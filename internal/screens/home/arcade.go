package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/ui/components"
	"github.com/abhisek/closer/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `  ██████╗██╗      ██████╗ ███████╗███████╗██████╗
 ██╔════╝██║     ██╔═══██╗██╔════╝██╔════╝██╔══██╗
 ██║     ██║     ██║   ██║███████╗█████╗  ██████╔╝
 ██║     ██║     ██║   ██║╚════██║██╔══╝  ██╔══██╗
 ╚██████╗███████╗╚██████╔╝███████║███████╗██║  ██║
  ╚═════╝╚══════╝ ╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝`

const arcadeTitleCompact = "C · L · O · S · E · R"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	cardStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	playStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	if !st.loaded {
		text = dimStyle.Render("loading...")
	} else if compact {
		text = fmt.Sprintf("%s %s %s",
			cardStyle.Render(fmt.Sprintf("▤%d", st.cards)),
			bestStyle.Render(fmt.Sprintf("★%d", st.best)),
			playText(st, true, playStyle, dimStyle),
		)
	} else {
		text = fmt.Sprintf("%s  %s  %s",
			cardStyle.Render(fmt.Sprintf("▤ %d CARDS", st.cards)),
			bestStyle.Render(fmt.Sprintf("★ BEST %d", st.best)),
			playText(st, false, playStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func playText(st stats, compact bool, active, dim lipgloss.Style) string {
	switch {
	case !st.quota:
		if compact {
			return active.Render("▶∞")
		}
		return active.Render("▶ FREE PLAY")
	case st.remaining < 0:
		if compact {
			return active.Render("▶∞")
		}
		return active.Render(fmt.Sprintf("▶ FREE FOR %dD", st.freeDays))
	case st.remaining == 0:
		if compact {
			return dim.Render("▶0")
		}
		return dim.Render("▶ NO PLAYS LEFT")
	}
	if compact {
		return active.Render(fmt.Sprintf("▶%d", st.remaining))
	}
	return active.Render(fmt.Sprintf("▶ %d LEFT TODAY", st.remaining))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderArcadeMenu renders each menu item as a fixed-width button.
// locked rows are drawn struck through.
func renderArcadeMenu(items []string, selected int, locked []bool, cw int) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		state := components.ButtonIdle
		if locked[i] {
			state = components.ButtonLocked
		}
		buttons[i] = components.ArcadeButton(label, state, i == selected, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for terminals
// too short for bordered buttons.
func renderArcadeMenuCompact(items []string, selected int, locked []bool, cw int) string {
	cursor := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Bold(true)
	lines := make([]string, len(items))
	for i, label := range items {
		switch {
		case i == selected:
			lines[i] = cursor.Render(" ▸ " + label + " ")
		case locked[i]:
			lines[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		default:
			lines[i] = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
