// Package quota gates how often a learner may start a free play session.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/closer/internal/balance"
	"github.com/abhisek/closer/internal/store"
)

// ErrQuotaExhausted is returned when today's free plays are used up.
var ErrQuotaExhausted = errors.New("today's free play has been used")

// Status describes a learner's allowance at a point in time.
type Status struct {
	FirstUse   time.Time
	FreeUntil  time.Time
	PlaysToday int
	Remaining  int // -1 while in the free period
}

// InFreePeriod reports whether plays are still unlimited.
func (s Status) InFreePeriod() bool {
	return s.Remaining < 0
}

// Gate checks and records plays against a PlayRepo. Calendar days are
// evaluated in loc.
type Gate struct {
	repo store.PlayRepo
	cfg  balance.Quota
	loc  *time.Location
}

// NewGate creates a gate. A nil loc means time.Local.
func NewGate(repo store.PlayRepo, cfg balance.Quota, loc *time.Location) *Gate {
	if loc == nil {
		loc = time.Local
	}
	return &Gate{repo: repo, cfg: cfg, loc: loc}
}

// Day returns the calendar key that plays at now are counted under.
func (g *Gate) Day(now time.Time) string {
	return now.In(g.loc).Format(time.DateOnly)
}

// Status returns the learner's allowance at now. The first call for a
// learner records now as their first use.
func (g *Gate) Status(ctx context.Context, learnerID string, now time.Time) (Status, error) {
	first, err := g.repo.FirstUse(ctx, learnerID, now)
	if err != nil {
		return Status{}, fmt.Errorf("load first use: %w", err)
	}
	plays, err := g.repo.PlayCount(ctx, learnerID, g.Day(now))
	if err != nil {
		return Status{}, fmt.Errorf("load play count: %w", err)
	}

	st := Status{
		FirstUse:   first,
		FreeUntil:  first.Add(g.cfg.FreePeriod),
		PlaysToday: plays,
		Remaining:  -1,
	}
	if !now.Before(st.FreeUntil) {
		st.Remaining = max(0, g.cfg.DailyFreePlays-plays)
	}
	return st, nil
}

// Allow returns ErrQuotaExhausted when the learner may not start another
// play at now.
func (g *Gate) Allow(ctx context.Context, learnerID string, now time.Time) error {
	st, err := g.Status(ctx, learnerID, now)
	if err != nil {
		return err
	}
	if st.Remaining == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// Record counts one play at now.
func (g *Gate) Record(ctx context.Context, learnerID string, now time.Time) error {
	if _, err := g.repo.FirstUse(ctx, learnerID, now); err != nil {
		return fmt.Errorf("record first use: %w", err)
	}
	if err := g.repo.IncrementPlay(ctx, learnerID, g.Day(now)); err != nil {
		return fmt.Errorf("record play: %w", err)
	}
	return nil
}
