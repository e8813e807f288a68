package summary

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/router"
	"github.com/abhisek/closer/internal/screen"
	"github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/ui/components"
	"github.com/abhisek/closer/internal/ui/layout"
	"github.com/abhisek/closer/internal/ui/theme"
)

// SummaryScreen displays the end-of-run report.
type SummaryScreen struct {
	summary *session.SessionSummary

	// saveErr is set when the run could not be written to the leaderboard.
	saveErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.SessionSummary, saveErr error) *SummaryScreen {
	return &SummaryScreen{summary: summary, saveErr: saveErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Result"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if key.Matches(kmsg, components.KeySelect, components.KeyBack) {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	title := "RUN COMPLETE"
	if sum.Mode == session.ModeSurvival {
		title = "TIME UP"
	}
	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(title)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(modeLine(sum))))
	b.WriteString("\n\n")

	// Score and rank.
	score := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("SCORE %d", sum.Score))
	if sum.Mode != session.ModeSurvival {
		score += "    " + theme.RankColor(string(sum.Rank)).
			Render("RANK "+sum.Rank.String())
	}
	b.WriteString(center(score))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Questions: %d    Correct: %d    Accuracy: %.0f%%    Max combo: %d    Time: %s",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100, sum.MaxCombo, formatElapsed(sum.Elapsed))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(stats)))
	b.WriteString("\n\n")

	if len(sum.Categories) > 0 {
		barWidth := min(width-8, 56)
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Categories")))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))))
		b.WriteString("\n")
		for _, cr := range sum.Categories {
			bar := components.AccuracyBar{
				Category:  cr.Category,
				Correct:   cr.Correct,
				Attempted: cr.Attempted,
				Width:     barWidth,
			}
			b.WriteString(center(bar.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.WeakCategories) > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).
			Render("Focused on: " + strings.Join(sum.WeakCategories, ", "))))
		b.WriteString("\n")
	}

	switch {
	case s.saveErr != nil:
		b.WriteString(center(theme.Incorrect.Render("Could not save this run: " + s.saveErr.Error())))
	case sum.Saved:
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success).Render("Saved to the ranking")))
	}

	return b.String()
}

func modeLine(sum *session.SessionSummary) string {
	if sum.Mode == session.ModeSurvival {
		return fmt.Sprintf("%s · %s", sum.Mode.DisplayName(), sum.Level.DisplayName())
	}
	return sum.Mode.DisplayName()
}

func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
