package spacedrep

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/closer/internal/balance"
)

func testModel() *Model {
	return NewModel(balance.DefaultConfig().Retention)
}

func TestComputeRetention_ZeroStrength(t *testing.T) {
	for _, days := range []float64{0, 1, 30} {
		if got := ComputeRetention(days, 0); got != 0 {
			t.Errorf("ComputeRetention(%v, 0) = %v, want 0", days, got)
		}
	}
	if got := ComputeRetention(1, -2); got != 0 {
		t.Errorf("ComputeRetention(1, -2) = %v, want 0", got)
	}
}

func TestComputeRetention_Bounds(t *testing.T) {
	for _, s := range []float64{0.5, 1, 5, 10} {
		prev := 2.0
		for days := 0.0; days <= 60; days += 0.5 {
			r := ComputeRetention(days, s)
			if r <= 0 || r > 1 {
				t.Fatalf("ComputeRetention(%v, %v) = %v, want (0, 1]", days, s, r)
			}
			if r >= prev {
				t.Fatalf("ComputeRetention(%v, %v) = %v did not decrease from %v", days, s, r, prev)
			}
			prev = r
		}
	}
}

func TestComputeRetention_IncreasesWithStrength(t *testing.T) {
	prev := 0.0
	for s := 0.5; s <= 10; s += 0.5 {
		r := ComputeRetention(3, s)
		if r <= prev {
			t.Fatalf("ComputeRetention(3, %v) = %v did not increase from %v", s, r, prev)
		}
		prev = r
	}
}

func TestComputeRetention_Value(t *testing.T) {
	got := ComputeRetention(2, 2)
	if math.Abs(got-math.Exp(-1)) > 1e-12 {
		t.Errorf("ComputeRetention(2, 2) = %v, want e^-1", got)
	}
}

func TestOnCorrect(t *testing.T) {
	m := testModel()
	tests := []struct {
		name         string
		stage        Stage
		fast         bool
		wantStage    Stage
		wantInterval time.Duration
	}{
		{"slow from new", StageNew, false, StageStaying, 15 * time.Hour},
		{"fast from new", StageNew, true, StageSettling, 15 * time.Hour},
		{"slow from staying", StageStaying, false, StageSettling, 30 * time.Hour},
		{"fast from settling graduates", StageSettling, true, StageHallOfFame, 365 * balance.Day},
		{"slow from brain asset graduates", StageBrainAsset, false, StageHallOfFame, 365 * balance.Day},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := m.OnCorrect(tt.stage, 1, tt.fast)
			if out.Stage != tt.wantStage {
				t.Errorf("stage = %d, want %d", out.Stage, tt.wantStage)
			}
			if out.Interval != tt.wantInterval {
				t.Errorf("interval = %v, want %v", out.Interval, tt.wantInterval)
			}
			if out.Strength != 1.5 {
				t.Errorf("strength = %v, want 1.5", out.Strength)
			}
		})
	}
}

func TestOnCorrect_CeilingIsIdempotent(t *testing.T) {
	m := testModel()
	stage, strength := StageHallOfFame, 9.0
	for i := 0; i < 5; i++ {
		out := m.OnCorrect(stage, strength, i%2 == 0)
		if out.Stage != StageHallOfFame {
			t.Fatalf("iteration %d: stage = %d, want 5", i, out.Stage)
		}
		if out.Interval != 365*balance.Day {
			t.Fatalf("iteration %d: interval = %v, want one year", i, out.Interval)
		}
		if out.Strength > 10 {
			t.Fatalf("iteration %d: strength = %v exceeds cap", i, out.Strength)
		}
		stage, strength = out.Stage, out.Strength
	}
	if strength != 10 {
		t.Errorf("strength = %v, want capped at 10", strength)
	}
}

func TestOnMiss(t *testing.T) {
	m := testModel()
	out := m.OnMiss()
	if out.Stage != StageNew {
		t.Errorf("stage = %d, want 1", out.Stage)
	}
	if out.Interval != 12*time.Hour {
		t.Errorf("interval = %v, want 12h", out.Interval)
	}
	if out.Strength != 0.5 {
		t.Errorf("strength = %v, want 0.5", out.Strength)
	}
}

func TestApply(t *testing.T) {
	m := testModel()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("absent state starts at stage one with zero strength", func(t *testing.T) {
		rs := m.Apply(nil, "u1", "c1", true, 10*time.Second, now)
		if rs.Stage != StageStaying {
			t.Errorf("stage = %d, want 2", rs.Stage)
		}
		if rs.MemoryStrength != 0.5 {
			t.Errorf("strength = %v, want 0.5", rs.MemoryStrength)
		}
		if rs.CorrectCount != 1 {
			t.Errorf("correct count = %d, want 1", rs.CorrectCount)
		}
		if !rs.NextReviewAt.Equal(now.Add(15 * time.Hour)) {
			t.Errorf("next review = %v, want %v", rs.NextReviewAt, now.Add(15*time.Hour))
		}
	})

	t.Run("fast answer jumps two stages", func(t *testing.T) {
		rs := m.Apply(nil, "u1", "c1", true, time.Second, now)
		if rs.Stage != StageSettling {
			t.Errorf("stage = %d, want 3", rs.Stage)
		}
	})

	t.Run("miss keeps correct count", func(t *testing.T) {
		prev := &ReviewState{
			Stage: StageBrainAsset, LastReviewedAt: now.Add(-48 * time.Hour),
			NextReviewAt: now, MemoryStrength: 4, CorrectCount: 7,
		}
		rs := m.Apply(prev, "u1", "c1", false, time.Second, now)
		if rs.Stage != StageNew || rs.MemoryStrength != 0.5 {
			t.Errorf("got stage %d strength %v, want reset", rs.Stage, rs.MemoryStrength)
		}
		if rs.CorrectCount != 7 {
			t.Errorf("correct count = %d, want 7", rs.CorrectCount)
		}
		if !rs.NextReviewAt.Equal(now.Add(12 * time.Hour)) {
			t.Errorf("next review = %v, want +12h", rs.NextReviewAt)
		}
	})

	t.Run("invalid stage treated as never reviewed", func(t *testing.T) {
		prev := &ReviewState{Stage: 9, MemoryStrength: 6, CorrectCount: 2, LastReviewedAt: now, NextReviewAt: now}
		rs := m.Apply(prev, "u1", "c1", true, 10*time.Second, now)
		if rs.Stage != StageStaying {
			t.Errorf("stage = %d, want 2", rs.Stage)
		}
		if rs.MemoryStrength != 0.5 {
			t.Errorf("strength = %v, want 0.5", rs.MemoryStrength)
		}
		if rs.CorrectCount != 3 {
			t.Errorf("correct count = %d, want 3", rs.CorrectCount)
		}
	})

	t.Run("next review never precedes last review", func(t *testing.T) {
		rs := m.Apply(nil, "u1", "c1", false, 0, now)
		if rs.NextReviewAt.Before(rs.LastReviewedAt) {
			t.Errorf("next %v before last %v", rs.NextReviewAt, rs.LastReviewedAt)
		}
	})
}
