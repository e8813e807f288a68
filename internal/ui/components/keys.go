package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/closer/internal/ui/layout"
)

// Keys shared by every screen.
var (
	KeyUp = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑↓", "Navigate"),
	)
	KeyDown = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↑↓", "Navigate"),
	)
	KeyLeft = key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←→", "Level"),
	)
	KeyRight = key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("←→", "Level"),
	)
	KeyTab = key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("Tab", "Next"),
	)
	KeyBackTab = key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("Shift+Tab", "Prev"),
	)
	KeySelect = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Select"),
	)
	KeyBack = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Back"),
	)
	KeyQuit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "Quit"),
	)
	KeyRegister = key.NewBinding(
		key.WithKeys("r", "R"),
		key.WithHelp("R", "Save words"),
	)
	KeyYes = key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "Yes"),
	)
	KeyNo = key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "No"),
	)
)

// Hints turns bindings into footer hints. Bindings sharing a help key are
// shown once.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" || seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}
