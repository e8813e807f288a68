package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/ui/theme"
)

// OptionLabels are the letters shown in front of the four options.
var OptionLabels = [4]string{"A", "B", "C", "D"}

// Choice renders a four-option question. The play screen owns input;
// Choice only tracks the cursor and, once revealed, the outcome.
type Choice struct {
	Options  [4]string
	Cursor   int
	Revealed bool
	Chosen   int // -1 on timeout
	Correct  int
}

// NewChoice creates an unrevealed choice with the cursor on A.
func NewChoice(options [4]string) Choice {
	return Choice{Options: options, Chosen: -1, Correct: -1}
}

// Move shifts the cursor by delta, clamped to the options.
func (c *Choice) Move(delta int) {
	c.Cursor = min(max(c.Cursor+delta, 0), len(c.Options)-1)
}

// Reveal marks chosen and correct for the feedback colours.
func (c *Choice) Reveal(chosen, correct int) {
	c.Revealed = true
	c.Chosen = chosen
	c.Correct = correct
}

// IndexForKey maps "1".."4" and "a".."d" to an option index.
func IndexForKey(k string) (int, bool) {
	switch strings.ToLower(k) {
	case "1", "a":
		return 0, true
	case "2", "b":
		return 1, true
	case "3", "c":
		return 2, true
	case "4", "d":
		return 3, true
	}
	return 0, false
}

// View renders the options at width w.
func (c Choice) View(w int) string {
	lines := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabels[i], opt)

		style := theme.Unselected
		switch {
		case c.Revealed && i == c.Correct:
			style = theme.Correct
			line += "  ✓"
		case c.Revealed && i == c.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case c.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		}
		lines = append(lines, style.Width(w).Render(line))
	}
	return strings.Join(lines, "\n")
}
