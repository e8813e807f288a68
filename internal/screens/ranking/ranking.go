// Package ranking shows the leaderboard for each run mode.
package ranking

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/router"
	"github.com/abhisek/closer/internal/screen"
	"github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/store"
	"github.com/abhisek/closer/internal/survival"
	"github.com/abhisek/closer/internal/ui/components"
	"github.com/abhisek/closer/internal/ui/layout"
	"github.com/abhisek/closer/internal/ui/theme"
)

// Tab is one leaderboard.
type Tab struct {
	Label string
	Mode  string // run mode key, see session.RunMode
}

// Tabs returns the leaderboards in display order.
func Tabs() []Tab {
	tabs := []Tab{
		{Label: session.ModeNational.DisplayName(), Mode: session.RunMode(session.ModeNational, "")},
		{Label: session.ModeForYou.DisplayName(), Mode: session.RunMode(session.ModeForYou, "")},
	}
	for _, lvl := range survival.AllLevels() {
		tabs = append(tabs, Tab{
			Label: "Survival " + lvl.DisplayName(),
			Mode:  session.RunMode(session.ModeSurvival, lvl),
		})
	}
	return tabs
}

type boardLoadedMsg struct {
	Mode string
	Runs []store.RunRecord
	Err  error
}

// RankingScreen lists the top runs of the selected mode.
type RankingScreen struct {
	runs      store.RunRepo
	learnerID string
	limit     int

	tabs    []Tab
	active  int
	board   []store.RunRecord
	loading bool
	errMsg  string
}

var _ screen.Screen = (*RankingScreen)(nil)
var _ screen.KeyHintProvider = (*RankingScreen)(nil)

// New creates a ranking screen showing up to limit runs per mode.
func New(runs store.RunRepo, learnerID string, limit int) *RankingScreen {
	return &RankingScreen{
		runs:      runs,
		learnerID: learnerID,
		limit:     limit,
		tabs:      Tabs(),
	}
}

func (r *RankingScreen) Init() tea.Cmd {
	return r.load()
}

func (r *RankingScreen) Title() string {
	return "Ranking"
}

func (r *RankingScreen) KeyHints() []layout.KeyHint {
	return components.Hints(components.KeyBackTab, components.KeyTab, components.KeyBack)
}

func (r *RankingScreen) load() tea.Cmd {
	r.loading = true
	mode := r.tabs[r.active].Mode
	runs, limit := r.runs, r.limit
	return func() tea.Msg {
		board, err := runs.Leaderboard(context.Background(), mode, limit)
		return boardLoadedMsg{Mode: mode, Runs: board, Err: err}
	}
}

func (r *RankingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		// Ignore boards for a tab the learner already left.
		if msg.Mode != r.tabs[r.active].Mode {
			return r, nil
		}
		r.loading = false
		r.board = msg.Runs
		r.errMsg = ""
		if msg.Err != nil {
			r.errMsg = msg.Err.Error()
		}
		return r, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, components.KeyBack):
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, components.KeyTab):
			r.active = (r.active + 1) % len(r.tabs)
			return r, r.load()
		case key.Matches(msg, components.KeyBackTab):
			r.active = (r.active + len(r.tabs) - 1) % len(r.tabs)
			return r, r.load()
		}
	}
	return r, nil
}

func (r *RankingScreen) View(width, height int) string {
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var b strings.Builder
	b.WriteString(center(r.renderTabs()))
	b.WriteString("\n\n")

	switch {
	case r.errMsg != "":
		b.WriteString(center(theme.Incorrect.Render(r.errMsg)))
	case r.loading:
		b.WriteString(center(theme.Hint.Render("Loading...")))
	case len(r.board) == 0:
		b.WriteString(center(theme.Hint.Render("No runs yet. Be the first!")))
	default:
		b.WriteString(center(r.renderTable()))
	}
	return b.String()
}

func (r *RankingScreen) renderTabs() string {
	parts := make([]string, len(r.tabs))
	for i, t := range r.tabs {
		if i == r.active {
			parts[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Padding(0, 1).
				Render(t.Label)
		} else {
			parts[i] = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Padding(0, 1).
				Render(t.Label)
		}
	}
	return strings.Join(parts, " ")
}

func (r *RankingScreen) renderTable() string {
	survivalTab := strings.HasPrefix(r.tabs[r.active].Mode, string(session.ModeSurvival))

	header := fmt.Sprintf("%3s  %-12s %10s %6s %5s %5s  %s", "#", "PLAYER", "SCORE", "COMBO", "ACC", "RANK", "DATE")
	lines := []string{lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(header)}

	for i, run := range r.board {
		rank := run.Rank
		if rank == "" || survivalTab {
			rank = "-"
		}
		line := fmt.Sprintf("%3d  %-12s %10d %6d %4.0f%% %5s  %s",
			i+1,
			truncate(run.LearnerID, 12),
			run.Score,
			run.MaxCombo,
			run.CorrectRate*100,
			rank,
			run.CreatedAt.Local().Format("01/02"),
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case run.LearnerID == r.learnerID:
			style = theme.Selected
		case i < 3:
			style = lipgloss.NewStyle().Foreground(theme.ArcadeCyan)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
