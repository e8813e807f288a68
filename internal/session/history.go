package session

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/abhisek/closer/internal/store"
)

// ModeStats sums a learner's runs in one stored run mode.
type ModeStats struct {
	Mode     string
	Runs     int
	AvgScore int64
	Best     int64
}

// History is a learner's personal play record.
type History struct {
	// Recent holds the newest runs, newest first.
	Recent []store.RunRecord

	TotalRuns int
	PlayTime  time.Duration

	// Modes is ordered by run count, then mode name.
	Modes []ModeStats
}

// LoadHistory reads every stored run of a learner and summarizes it.
// recent caps History.Recent (0 = all).
func LoadHistory(ctx context.Context, runs store.RunRepo, learnerID string, recent int) (*History, error) {
	recs, err := runs.History(ctx, learnerID, 0)
	if err != nil {
		return nil, fmt.Errorf("load run history: %w", err)
	}
	h := SummarizeRuns(recs)
	if recent > 0 && len(h.Recent) > recent {
		h.Recent = h.Recent[:recent]
	}
	return h, nil
}

// SummarizeRuns builds a History from runs given newest first.
func SummarizeRuns(runs []store.RunRecord) *History {
	h := &History{Recent: runs, TotalRuns: len(runs)}

	type acc struct {
		runs int
		sum  int64
		best int64
	}
	byMode := make(map[string]*acc)
	for _, r := range runs {
		h.PlayTime += r.Elapsed
		a, ok := byMode[r.Mode]
		if !ok {
			a = &acc{best: r.Score}
			byMode[r.Mode] = a
		}
		a.runs++
		a.sum += r.Score
		a.best = max(a.best, r.Score)
	}

	for mode, a := range byMode {
		h.Modes = append(h.Modes, ModeStats{
			Mode:     mode,
			Runs:     a.runs,
			AvgScore: int64(math.Round(float64(a.sum) / float64(a.runs))),
			Best:     a.best,
		})
	}
	sort.Slice(h.Modes, func(i, j int) bool {
		if h.Modes[i].Runs != h.Modes[j].Runs {
			return h.Modes[i].Runs > h.Modes[j].Runs
		}
		return h.Modes[i].Mode < h.Modes[j].Mode
	})
	return h
}
