package home

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/closer/internal/router"
	"github.com/abhisek/closer/internal/screen"
	"github.com/abhisek/closer/internal/screens/play"
	"github.com/abhisek/closer/internal/screens/ranking"
	"github.com/abhisek/closer/internal/scoring"
	"github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/store"
	"github.com/abhisek/closer/internal/survival"
	"github.com/abhisek/closer/internal/ui/components"
	"github.com/abhisek/closer/internal/ui/layout"
)

// Deps are the services the home screen reads stats from and hands to
// the screens it opens.
type Deps struct {
	Cards        store.CardRepo
	Runs         store.RunRepo
	Play         play.Deps
	RankingLimit int
	Logger       *slog.Logger
}

// Menu rows.
const (
	itemNational = iota
	itemForYou
	itemVocab
	itemSurvival
	itemRanking
	itemExit
)

type stats struct {
	loaded    bool
	cards     int
	best      int64
	bestRank  scoring.Rank
	quota     bool
	remaining int
	freeDays  int
}

func (st stats) exhausted() bool {
	return st.quota && st.remaining == 0
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	levels []survival.Level
	level  int
	stats  stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	h := &HomeScreen{
		deps:   deps,
		levels: survival.AllLevels(),
	}

	items := make([]components.MenuItem, itemExit+1)
	for _, i := range []int{itemNational, itemForYou, itemVocab, itemSurvival} {
		mode := menuModes[i]
		items[i] = components.MenuItem{Action: func() tea.Cmd {
			return h.push(play.New(h.deps.Play, mode, h.levels[h.level]))
		}}
	}
	items[itemRanking] = components.MenuItem{Action: func() tea.Cmd {
		return h.push(ranking.New(h.deps.Runs, h.deps.Play.LearnerID, h.deps.RankingLimit))
	}}
	items[itemExit] = components.MenuItem{Action: func() tea.Cmd {
		return tea.Quit
	}}
	h.menu = components.NewMenu(items)
	return h
}

var menuModes = map[int]session.Mode{
	itemNational: session.ModeNational,
	itemForYou:   session.ModeForYou,
	itemVocab:    session.ModeVocab,
	itemSurvival: session.ModeSurvival,
}

func (h *HomeScreen) push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := components.Hints(components.KeyUp, components.KeySelect)
	if h.menu.Selected == itemSurvival {
		hints = append(hints, components.Hints(components.KeyLeft)...)
	}
	return append(hints, components.Hints(components.KeyQuit)...)
}

// loadStats reads the stats bar. Failures leave the affected fields at
// zero; the home screen must open even on an empty database.
func (h *HomeScreen) loadStats() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()
		if deps.Play.Now != nil {
			now = deps.Play.Now()
		}
		st := stats{loaded: true}

		if deps.Cards != nil {
			n, err := deps.Cards.CountCards(ctx)
			if err != nil {
				deps.Logger.Warn("failed to count cards", "error", err)
			}
			st.cards = n
		}

		if deps.Runs != nil {
			best, err := deps.Runs.BestRun(ctx, deps.Play.LearnerID, session.RunMode(session.ModeNational, ""))
			switch {
			case err == nil:
				st.best = best.Score
				st.bestRank = scoring.Rank(best.Rank)
			case !errors.Is(err, store.ErrNotFound):
				deps.Logger.Warn("failed to load best run", "error", err)
			}
		}

		if gate := deps.Play.Quota; gate != nil {
			qs, err := gate.Status(ctx, deps.Play.LearnerID, now)
			if err != nil {
				deps.Logger.Warn("failed to load quota", "error", err)
			} else {
				st.quota = true
				st.remaining = qs.Remaining
				if qs.InFreePeriod() {
					st.freeDays = int(qs.FreeUntil.Sub(now).Hours()/24) + 1
				}
			}
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg.stats
		return h, nil

	case router.ResumedMsg:
		return h, h.loadStats()

	case tea.KeyPressMsg:
		if h.menu.Selected == itemSurvival {
			switch {
			case key.Matches(msg, components.KeyLeft):
				h.level = (h.level + len(h.levels) - 1) % len(h.levels)
				return h, nil
			case key.Matches(msg, components.KeyRight):
				h.level = (h.level + 1) % len(h.levels)
				return h, nil
			}
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// Level returns the survival level currently picked.
func (h *HomeScreen) Level() survival.Level {
	return h.levels[h.level]
}

func (h *HomeScreen) labels() []string {
	return []string{
		"NATIONAL",
		"FOR YOU",
		"VOCAB REVIEW",
		"SURVIVAL ◂ " + strings.ToUpper(h.Level().DisplayName()) + " ▸",
		"RANKING",
		"EXIT GAME",
	}
}

// locked marks the play rows once today's free play is spent. They stay
// selectable so the play screen can explain why.
func (h *HomeScreen) locked() []bool {
	rows := make([]bool, itemExit+1)
	if h.stats.exhausted() {
		for i := range menuModes {
			rows[i] = true
		}
	}
	return rows
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.stats.exhausted():
		return MascotAlert
	case h.stats.bestRank == scoring.RankS:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 36 || width < 100
	tiny := height < 26

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if tiny {
		sections = append(sections, renderArcadeMenuCompact(h.labels(), h.menu.Selected, h.locked(), cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.labels(), h.menu.Selected, h.locked(), cw))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}
