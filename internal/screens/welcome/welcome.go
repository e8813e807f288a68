// Package welcome is the attract screen shown at startup: the logo wipes
// in, a demo question answers itself, and any key moves on to the menu.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/router"
	"github.com/abhisek/closer/internal/screen"
	"github.com/abhisek/closer/internal/ui/components"
	"github.com/abhisek/closer/internal/ui/theme"
)

// Attract loop timeline.
const (
	tickInterval = 100 * time.Millisecond
	wipeEnd      = 800 * time.Millisecond  // logo fully drawn
	demoStart    = 800 * time.Millisecond  // demo card appears
	demoLock     = 2000 * time.Millisecond // demo cursor settles on the answer
	promptStart  = 2000 * time.Millisecond // tagline and key prompt appear
	totalDur     = 4000 * time.Millisecond
	cursorStep   = 300 * time.Millisecond
	blinkPeriod  = 500 * time.Millisecond
)

var demo = struct {
	prompt  string
	options [4]string
	answer  int
}{
	prompt:  "The product launch has been ____ until next quarter.",
	options: [4]string{"announced", "postponed", "acquired", "exceeded"},
	answer:  1,
}

type tickMsg time.Time

// WelcomeScreen is the startup splash.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory's
// screen on the first key press.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		// Past the end of the timeline only the key prompt animates, so
		// elapsed wraps within the last blink cycles.
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			w.elapsed = promptStart + (w.elapsed-promptStart)%(2*blinkPeriod)
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

// demoChoice returns the demo card's state at the current time: the
// cursor walks the options, then locks and reveals the answer.
func (w *WelcomeScreen) demoChoice() components.Choice {
	c := components.NewChoice(demo.options)
	if w.elapsed >= demoLock {
		c.Cursor = demo.answer
		c.Reveal(demo.answer, demo.answer)
		return c
	}
	c.Cursor = int((w.elapsed-demoStart)/cursorStep) % len(demo.options)
	return c
}

// promptVisible blinks the key prompt on and off.
func (w *WelcomeScreen) promptVisible() bool {
	return w.elapsed >= promptStart && ((w.elapsed-promptStart)/blinkPeriod)%2 == 0
}

func (w *WelcomeScreen) View(width, height int) string {
	reveal := float64(w.elapsed) / float64(wipeEnd)
	sections := []string{RenderBanner(width, reveal)}

	if w.elapsed >= demoStart && height >= 20 {
		cw := components.ContentWidth(width)
		card := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(demo.prompt) +
			"\n\n" + w.demoChoice().View(cw-8)
		sections = append(sections, "", components.ArcadeCard(card, cw))
	}

	if w.elapsed >= promptStart {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Fill the blank. Beat the clock."))

		prompt := " "
		if w.promptVisible() {
			prompt = lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("PRESS ANY KEY")
		}
		sections = append(sections, "", prompt)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
