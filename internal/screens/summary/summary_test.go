package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/closer/internal/router"
	"github.com/abhisek/closer/internal/scoring"
	"github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/survival"
)

func testSummary() *session.SessionSummary {
	return &session.SessionSummary{
		RunID:          "run-1",
		Mode:           session.ModeNational,
		Score:          4200,
		MaxCombo:       7,
		TotalQuestions: 10,
		TotalCorrect:   8,
		Accuracy:       0.8,
		Elapsed:        83 * time.Second,
		Rank:           scoring.RankA,
		Categories: []session.CategoryResult{
			{Category: "品詞", Attempted: 6, Correct: 5},
			{Category: "時制", Attempted: 4, Correct: 3},
		},
		Saved: true,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Result" {
		t.Errorf("Title = %q, want %q", s.Title(), "Result")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), nil)
	view := s.View(100, 30)
	for _, want := range []string{"RUN COMPLETE", "SCORE 4200", "RANK A", "Max combo: 7", "1:23", "品詞", "Saved to the ranking"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_SurvivalHasNoRank(t *testing.T) {
	sum := testSummary()
	sum.Mode = session.ModeSurvival
	sum.Level = survival.LevelAce
	sum.Rank = scoring.RankNone

	view := New(sum, nil).View(100, 30)
	if strings.Contains(view, "RANK") {
		t.Error("survival summary should not show a rank")
	}
	if !strings.Contains(view, "TIME UP") {
		t.Error("expected survival title")
	}
}

func TestSummaryScreen_SaveError(t *testing.T) {
	sum := testSummary()
	sum.Saved = false
	view := New(sum, errors.New("disk full")).View(100, 30)
	if !strings.Contains(view, "disk full") {
		t.Error("expected save error in view")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	keys := []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
	}
	for _, k := range keys {
		s := New(testSummary(), nil)
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatalf("expected a command on %q", k.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("Update(%q) cmd = %T, want PopScreenMsg", k.String(), cmd())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary(), nil)
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
