package spacedrep

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/closer/internal/balance"
)

func TestIsDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rs   *ReviewState
		want bool
	}{
		{"nil is due", nil, true},
		{"before date", &ReviewState{NextReviewAt: now.Add(24 * time.Hour)}, false},
		{"on date", &ReviewState{NextReviewAt: now}, true},
		{"after date", &ReviewState{NextReviewAt: now.Add(-48 * time.Hour)}, true},
	}
	for _, tt := range tests {
		if got := tt.rs.IsDue(now); got != tt.want {
			t.Errorf("%s: IsDue() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOverdueDays(t *testing.T) {
	now := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	rs := &ReviewState{NextReviewAt: now.Add(-36 * time.Hour)}
	if got := rs.OverdueDays(now); got != 1.5 {
		t.Errorf("OverdueDays() = %f, want 1.5", got)
	}
	rs = &ReviewState{NextReviewAt: now.Add(time.Hour)}
	if got := rs.OverdueDays(now); got != 0 {
		t.Errorf("OverdueDays() = %f, want 0", got)
	}
}

func TestRetention(t *testing.T) {
	now := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	rs := &ReviewState{LastReviewedAt: now.Add(-2 * balance.Day), MemoryStrength: 2}
	if got := rs.Retention(now); math.Abs(got-math.Exp(-1)) > 1e-12 {
		t.Errorf("Retention() = %v, want e^-1", got)
	}

	var missing *ReviewState
	if got := missing.Retention(now); got != 0 {
		t.Errorf("nil Retention() = %v, want 0", got)
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rs   *ReviewState
		want ReviewStatus
	}{
		{"never reviewed", nil, ReviewNew},
		{"not due", &ReviewState{Stage: 2, LastReviewedAt: now, NextReviewAt: now.Add(time.Hour)}, ReviewNotDue},
		{"graduated", &ReviewState{Stage: 5, LastReviewedAt: now, NextReviewAt: now.Add(365 * balance.Day)}, ReviewGraduated},
		{"due within grace", &ReviewState{Stage: 2, LastReviewedAt: now.Add(-4 * balance.Day), NextReviewAt: now.Add(-balance.Day)}, ReviewDue},
		{"overdue", &ReviewState{Stage: 2, LastReviewedAt: now.Add(-5 * balance.Day), NextReviewAt: now.Add(-3 * balance.Day)}, ReviewOverdue},
	}
	for _, tt := range tests {
		if got := tt.rs.Status(now); got != tt.want {
			t.Errorf("%s: Status() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDaysUntilReview(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := &ReviewState{NextReviewAt: now.Add(36 * time.Hour)}
	if got := rs.DaysUntilReview(now); got != 2 {
		t.Errorf("DaysUntilReview() = %d, want 2", got)
	}
	rs = &ReviewState{NextReviewAt: now}
	if got := rs.DaysUntilReview(now); got != 0 {
		t.Errorf("DaysUntilReview() = %d, want 0", got)
	}
}

func TestIntervalForStage(t *testing.T) {
	cfg := balance.DefaultConfig().Retention
	tests := []struct {
		stage Stage
		want  time.Duration
	}{
		{StageNew, 6 * time.Hour},
		{StageStaying, 12 * time.Hour},
		{StageSettling, 30 * time.Hour},
		{StageBrainAsset, 84 * time.Hour},
		{StageHallOfFame, 15 * balance.Day},
		{0, 6 * time.Hour},
		{-4, 6 * time.Hour},
		{8, 15 * balance.Day},
	}
	for _, tt := range tests {
		if got := IntervalForStage(cfg, tt.stage); got != tt.want {
			t.Errorf("IntervalForStage(%d) = %v, want %v", tt.stage, got, tt.want)
		}
	}
}

func TestStageLabels(t *testing.T) {
	if StageNew.Label() != "新規" || StageHallOfFame.Label() != "殿堂入り" {
		t.Errorf("unexpected labels %q, %q", StageNew.Label(), StageHallOfFame.Label())
	}
	if Stage(42).DisplayName() != "Hall of Fame" {
		t.Errorf("out-of-range stage should clamp, got %q", Stage(42).DisplayName())
	}
}
