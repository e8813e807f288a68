package play

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/content"
	sess "github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/spacedrep"
	"github.com/abhisek/closer/internal/survival"
	"github.com/abhisek/closer/internal/ui/components"
	"github.com/abhisek/closer/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, height, s.errMsg)
	case s.state == nil:
		return s.renderLoading(width, height)
	case s.showingQuitConfirm:
		return renderQuitConfirm(width, height)
	}
	return s.renderQuestion(width)
}

func formatStatus(score int64, combo int) string {
	if combo > 1 {
		return fmt.Sprintf("SCORE %d  COMBO x%d", score, combo)
	}
	return fmt.Sprintf("SCORE %d", score)
}

func (s *PlayScreen) renderQuestion(width int) string {
	state := s.state
	card := state.CurrentCard()
	if card == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	// Info line.
	progress := fmt.Sprintf("Q %d/%d", state.Current+1, len(state.Plan.Cards))
	if state.Clock != nil {
		progress = fmt.Sprintf("Q %d", state.TotalQuestions+1)
	}
	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(card.Category) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  ·  TOEIC %s  ·  %s  ·  ✓ %d", card.Difficulty, progress, state.TotalCorrect))
	b.WriteString(center(info))
	b.WriteString("\n\n")

	// Timers.
	if state.Clock != nil {
		b.WriteString(center(s.renderClock(cw)))
		b.WriteString("\n")
	}
	if state.Phase == sess.PhaseActive {
		limit := sess.QuestionLimit(state)
		bar := components.TimeBar{
			Remaining: limit - s.deps.Now().Sub(s.questionStart),
			Total:     limit,
			Fever:     state.Clock != nil && state.Clock.State() == survival.StateFever,
			Width:     cw,
		}
		b.WriteString(center(bar.View()))
	}
	b.WriteString("\n\n")

	// Prompt and options.
	prompt := lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(card.Prompt)
	b.WriteString(center(prompt))
	b.WriteString("\n\n")
	b.WriteString(center(s.choice.View(cw)))
	b.WriteString("\n\n")

	if s.stunned {
		b.WriteString(center(theme.Incorrect.Render("STUNNED")))
		b.WriteString("\n")
	}
	if state.Phase != sess.PhaseActive && state.Last != nil {
		b.WriteString(center(s.renderFeedback(state.Last, cw)))
	}
	return b.String()
}

// renderClock shows the survival budget and fever window.
func (s *PlayScreen) renderClock(cw int) string {
	clock := s.state.Clock
	bar := components.TimeBar{
		Remaining: clock.Budget(),
		Total:     s.deps.Session.Balance.Survival.Max,
		Fever:     clock.State() == survival.StateFever,
		Width:     cw,
	}
	line := bar.View()
	if clock.State() == survival.StateFever {
		line += "\n" + theme.Fever.Render(fmt.Sprintf("FEVER %.1fs", clock.FeverRemaining().Seconds()))
	}
	return line
}

func (s *PlayScreen) renderFeedback(out *sess.AnswerOutcome, cw int) string {
	card := s.currentCard()
	var lines []string

	switch {
	case out.Correct:
		head := fmt.Sprintf("CORRECT  +%d", out.Points)
		if out.Combo > 1 {
			head += fmt.Sprintf("  COMBO x%d", out.Combo)
		}
		lines = append(lines, theme.Correct.Render(head))
	case out.TimedOut:
		lines = append(lines, theme.Incorrect.Render("TIME UP  →  "+card.CorrectOption()))
	default:
		lines = append(lines, theme.Incorrect.Render("MISS  →  "+card.CorrectOption()))
	}

	if ev := out.Clock; s.state.Clock != nil {
		var notes []string
		if ev.BudgetDelta != 0 {
			notes = append(notes, fmt.Sprintf("%+.1fs", ev.BudgetDelta.Seconds()))
		}
		if ev.ComboBonus {
			notes = append(notes, "COMBO BONUS")
		}
		if ev.FeverStarted {
			notes = append(notes, "FEVER!")
		}
		if len(notes) > 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(strings.Join(notes, "  ")))
		}
	}

	if card.Explanation != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Width(cw).Render(card.Explanation))
	}
	if len(card.VocabMap) > 0 {
		lines = append(lines, renderVocab(card.VocabMap, s.saved, cw))
	}
	if out.Review != nil {
		lines = append(lines, renderReview(out.Review.Stage, out.Review.NextReviewAt, s.deps.Now()))
	} else if s.review != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(s.review.Stage.Label()+" · "+s.review.Stage.DisplayName()))
	}

	return components.ArcadeCard(strings.Join(lines, "\n"), cw)
}

// renderVocab lists the card's words. Saved words carry a star.
func renderVocab(vocab map[string][]string, saved map[string]bool, cw int) string {
	words := make([]string, 0, len(vocab))
	for w := range vocab {
		words = append(words, w)
	}
	slices.Sort(words)

	wordStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	meaningStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := make([]string, 0, len(words))
	for _, w := range words {
		mark := "  "
		if saved[content.NormalizeWord(w)] {
			mark = theme.Fever.Render("★ ")
		}
		lines = append(lines, mark+wordStyle.Render(w)+"  "+meaningStyle.Render(strings.Join(vocab[w], ", ")))
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func renderReview(stage spacedrep.Stage, next, now time.Time) string {
	days := int(next.Sub(now).Hours() / 24)
	when := "today"
	switch {
	case days == 1:
		when = "tomorrow"
	case days > 1:
		when = fmt.Sprintf("in %d days", days)
	}
	return lipgloss.NewStyle().Foreground(theme.ArcadeCyan).
		Render(fmt.Sprintf("%s · %s · next review %s", stage.Label(), stage.DisplayName(), when))
}

func (s *PlayScreen) renderLoading(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		s.spinner.View()+" "+lipgloss.NewStyle().Foreground(theme.TextDim).Render("Shuffling cards..."))
}

func renderQuitConfirm(width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 4).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("End this run?") +
			"\n\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Answered questions still count.") +
			"\n\n" +
			lipgloss.NewStyle().Foreground(theme.Accent).Render("[Y] End run    [N] Keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderError(width, height int, errMsg string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Incorrect.Render(errMsg)+"\n\n"+
			theme.Hint.Render("press any key to go back"))
}
