package ranking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/closer/internal/router"
	"github.com/abhisek/closer/internal/store"
)

// memRuns implements store.RunRepo for testing.
type memRuns struct {
	byMode map[string][]store.RunRecord
	asked  []string
	err    error
}

func (m *memRuns) SaveRun(context.Context, store.RunRecord) error { return nil }
func (m *memRuns) Leaderboard(_ context.Context, mode string, _ int) ([]store.RunRecord, error) {
	m.asked = append(m.asked, mode)
	return m.byMode[mode], m.err
}
func (m *memRuns) BestRun(context.Context, string, string) (*store.RunRecord, error) {
	return nil, store.ErrNotFound
}
func (m *memRuns) History(context.Context, string, int) ([]store.RunRecord, error) {
	return nil, nil
}
func (m *memRuns) DeleteRuns(context.Context, string) error { return nil }

func testRuns() *memRuns {
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return &memRuns{byMode: map[string][]store.RunRecord{
		"national": {
			{LearnerID: "rival", Score: 9000, MaxCombo: 12, CorrectRate: 0.9, Rank: "B", CreatedAt: at},
			{LearnerID: "me", Score: 4200, MaxCombo: 5, CorrectRate: 0.7, CreatedAt: at},
		},
		"survival:ace": {
			{LearnerID: "me", Score: 31, MaxCombo: 20, CorrectRate: 0.95, CreatedAt: at},
		},
	}}
}

// run feeds the command result back into the screen.
func run(t *testing.T, r *RankingScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	r.Update(cmd())
}

func TestTabs(t *testing.T) {
	want := []string{"national", "forYou", "survival:rookie", "survival:ace", "survival:legend"}
	tabs := Tabs()
	if len(tabs) != len(want) {
		t.Fatalf("len(Tabs) = %d, want %d", len(tabs), len(want))
	}
	for i, tab := range tabs {
		if tab.Mode != want[i] {
			t.Errorf("Tabs()[%d].Mode = %q, want %q", i, tab.Mode, want[i])
		}
	}
}

func TestRankingScreen_LoadsNational(t *testing.T) {
	runs := testRuns()
	r := New(runs, "me", 20)
	run(t, r, r.Init())

	view := r.View(100, 30)
	for _, want := range []string{"rival", "9000", "4200", "Survival Ace"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if len(runs.asked) != 1 || runs.asked[0] != "national" {
		t.Errorf("asked = %v, want [national]", runs.asked)
	}
}

func TestRankingScreen_SwitchTabs(t *testing.T) {
	runs := testRuns()
	r := New(runs, "me", 20)
	run(t, r, r.Init())

	// Back-tab wraps to the last tab.
	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	run(t, r, cmd)
	if r.tabs[r.active].Mode != "survival:legend" {
		t.Errorf("active = %q, want survival:legend", r.tabs[r.active].Mode)
	}
	if view := r.View(100, 30); !strings.Contains(view, "No runs yet") {
		t.Error("expected empty board message")
	}

	_, cmd = r.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	run(t, r, cmd)
	if view := r.View(100, 30); !strings.Contains(view, "31") {
		t.Error("expected survival:ace board")
	}
}

func TestRankingScreen_StaleBoardIgnored(t *testing.T) {
	r := New(testRuns(), "me", 20)
	r.Init()
	r.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	r.Update(boardLoadedMsg{Mode: "national", Runs: []store.RunRecord{{LearnerID: "ghost"}}})
	if len(r.board) != 0 {
		t.Error("board for another tab should be ignored")
	}
	if !r.loading {
		t.Error("expected still loading")
	}
}

func TestRankingScreen_Error(t *testing.T) {
	runs := testRuns()
	runs.err = errors.New("db locked")
	r := New(runs, "me", 20)
	run(t, r, r.Init())

	if view := r.View(100, 30); !strings.Contains(view, "db locked") {
		t.Error("expected error in view")
	}
}

func TestRankingScreen_EscPops(t *testing.T) {
	r := New(testRuns(), "me", 20)
	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("cmd = %T, want PopScreenMsg", cmd())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 12, "short"},
		{"averyverylongname", 8, "averyve…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
