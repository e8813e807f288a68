package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/closer/internal/router"
	"github.com/abhisek/closer/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func TestTimeline(t *testing.T) {
	w, _ := newTestWelcome()

	view := w.View(100, 40)
	if strings.Contains(view, "Beat the clock") || strings.Contains(view, "launch") {
		t.Error("only the logo should be drawn at start")
	}

	sendTicks(w, 10)
	view = w.View(100, 40)
	if !strings.Contains(view, "launch has been ____") {
		t.Error("demo question should appear after the wipe")
	}
	if strings.Contains(view, "✓") {
		t.Error("demo answer should not be revealed yet")
	}

	sendTicks(w, 10)
	view = w.View(100, 40)
	for _, want := range []string{"✓", "postponed", "Beat the clock", "PRESS ANY KEY"} {
		if !strings.Contains(view, want) {
			t.Errorf("view at %v missing %q", w.elapsed, want)
		}
	}
}

func TestDemoCursorWalksOptions(t *testing.T) {
	w, _ := newTestWelcome()
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{800 * time.Millisecond, 0},
		{1100 * time.Millisecond, 1},
		{1700 * time.Millisecond, 3},
		{2500 * time.Millisecond, demo.answer},
	}
	for _, tt := range tests {
		w.elapsed = tt.elapsed
		if got := w.demoChoice().Cursor; got != tt.want {
			t.Errorf("cursor at %v = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestPromptBlinks(t *testing.T) {
	w, _ := newTestWelcome()
	tests := []struct {
		elapsed time.Duration
		want    bool
	}{
		{1900 * time.Millisecond, false},
		{2000 * time.Millisecond, true},
		{2400 * time.Millisecond, true},
		{2500 * time.Millisecond, false},
		{3000 * time.Millisecond, true},
	}
	for _, tt := range tests {
		w.elapsed = tt.elapsed
		if got := w.promptVisible(); got != tt.want {
			t.Errorf("promptVisible() at %v = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestElapsedLoopsAfterTimeline(t *testing.T) {
	w, _ := newTestWelcome()
	sendTicks(w, 100)
	if w.elapsed < promptStart || w.elapsed >= totalDur {
		t.Errorf("elapsed = %v, want within [%v, %v)", w.elapsed, promptStart, totalDur)
	}
}

func TestBannerWipe(t *testing.T) {
	if got := RenderBanner(40, 0); strings.Contains(got, "C") {
		t.Errorf("RenderBanner(40, 0) = %q, want nothing revealed", got)
	}
	if got := RenderBanner(40, 1); !strings.Contains(got, "C L O S E R") {
		t.Errorf("RenderBanner(40, 1) = %q, want compact logo", got)
	}
	half := RenderBanner(40, 0.5)
	if !strings.Contains(half, "C L O") || strings.Contains(half, "S E R") {
		t.Errorf("RenderBanner(40, 0.5) = %q, want left half only", half)
	}
}

func TestKeypressTransitions(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("cmd = %T, want ReplaceScreenMsg", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 60)
	if *calls != 0 {
		t.Errorf("factory calls = %d, want 0 without a keypress", *calls)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("Title() = %q, want empty", w.Title())
	}
}
