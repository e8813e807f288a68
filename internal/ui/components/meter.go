package components

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/ui/theme"
)

// meter draws a solid bar of width cells, the first frac of them in fill.
func meter(frac float64, width int, fill color.Color) string {
	frac = min(max(frac, 0), 1)
	filled := int(float64(width) * frac)
	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", width-filled))
}

// TimeBar is a countdown bar. It drains from the right and changes colour
// as time runs low.
type TimeBar struct {
	Remaining time.Duration
	Total     time.Duration
	Fever     bool
	Width     int
}

// Fraction returns Remaining/Total clamped to [0, 1].
func (t TimeBar) Fraction() float64 {
	if t.Total <= 0 {
		return 0
	}
	return min(max(float64(t.Remaining)/float64(t.Total), 0), 1)
}

func (t TimeBar) color() color.Color {
	f := t.Fraction()
	switch {
	case t.Fever:
		return theme.ArcadePink
	case f <= 0.25:
		return theme.Error
	case f <= 0.5:
		return theme.ArcadeYellow
	}
	return theme.Secondary
}

// View renders the bar followed by the remaining seconds.
func (t TimeBar) View() string {
	label := fmt.Sprintf(" %4.1fs", max(t.Remaining, 0).Seconds())
	return meter(t.Fraction(), max(t.Width-len(label), 4), t.color()) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}

// AccuracyBar is one category row of a results table: name, hits out of
// attempts, a bar coloured by how well it went, and the percentage.
type AccuracyBar struct {
	Category  string
	Correct   int
	Attempted int
	Width     int
}

// Accuracy returns Correct/Attempted, or 0 before any attempt.
func (a AccuracyBar) Accuracy() float64 {
	if a.Attempted == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Attempted)
}

func (a AccuracyBar) color() color.Color {
	switch acc := a.Accuracy(); {
	case acc >= 0.8:
		return theme.Success
	case acc >= 0.5:
		return theme.ArcadeYellow
	}
	return theme.Error
}

func (a AccuracyBar) View() string {
	head := lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("%s %2d/%-2d  ", padRight(a.Category, 6), a.Correct, a.Attempted))
	pct := fmt.Sprintf("  %3d%%", int(a.Accuracy()*100))

	barWidth := max(a.Width-lipgloss.Width(head)-len(pct), 4)
	return head + meter(a.Accuracy(), barWidth, a.color()) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}

// padRight pads s with spaces to w terminal cells. Category names are
// mostly double-width kana, so fmt's rune-based padding misaligns them.
func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}
