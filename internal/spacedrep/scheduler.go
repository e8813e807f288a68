package spacedrep

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/closer/internal/store"
)

// Scheduler applies review answers through the retention model and keeps
// per-card state in a ReviewRepo.
type Scheduler struct {
	model *Model
	repo  store.ReviewRepo
}

// NewScheduler creates a scheduler over the given model and repository.
func NewScheduler(model *Model, repo store.ReviewRepo) *Scheduler {
	return &Scheduler{model: model, repo: repo}
}

// Model returns the retention model the scheduler applies.
func (s *Scheduler) Model() *Model {
	return s.model
}

// Get returns the review state of a card, or nil if it was never reviewed.
func (s *Scheduler) Get(ctx context.Context, learnerID, cardID string) (*ReviewState, error) {
	rec, err := s.repo.GetReview(ctx, learnerID, cardID)
	if err != nil {
		return nil, fmt.Errorf("get review state: %w", err)
	}
	return fromRecord(rec), nil
}

// RecordReview folds one answer into the card's state and persists it.
func (s *Scheduler) RecordReview(ctx context.Context, learnerID, cardID string, correct bool, responseTime time.Duration, now time.Time) (*ReviewState, error) {
	prev, err := s.Get(ctx, learnerID, cardID)
	if err != nil {
		return nil, err
	}

	next := s.model.Apply(prev, learnerID, cardID, correct, responseTime, now)
	if err := s.repo.PutReview(ctx, toRecord(next)); err != nil {
		return nil, fmt.Errorf("put review state: %w", err)
	}
	return next, nil
}

// States returns every review state of a learner keyed by card ID.
func (s *Scheduler) States(ctx context.Context, learnerID string) (map[string]*ReviewState, error) {
	recs, err := s.repo.ListReviews(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list review states: %w", err)
	}
	states := make(map[string]*ReviewState, len(recs))
	for _, rec := range recs {
		states[rec.CardID] = fromRecord(rec)
	}
	return states, nil
}

// DueCards filters cardIDs down to those due at now. Reviewed cards come
// first, most overdue first; cards with no state follow in input order.
func (s *Scheduler) DueCards(ctx context.Context, learnerID string, cardIDs []string, now time.Time) ([]string, error) {
	states, err := s.States(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	type dueCard struct {
		id      string
		overdue float64
	}
	var (
		due   []dueCard
		fresh []string
	)
	for _, id := range cardIDs {
		rs, ok := states[id]
		if !ok {
			fresh = append(fresh, id)
			continue
		}
		if rs.IsDue(now) {
			due = append(due, dueCard{id: id, overdue: rs.OverdueDays(now)})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].id < due[j].id
	})

	ids := make([]string, 0, len(due)+len(fresh))
	for _, d := range due {
		ids = append(ids, d.id)
	}
	return append(ids, fresh...), nil
}

func fromRecord(rec *store.ReviewRecord) *ReviewState {
	if rec == nil {
		return nil
	}
	return &ReviewState{
		LearnerID:      rec.LearnerID,
		CardID:         rec.CardID,
		Stage:          Stage(rec.Stage),
		LastReviewedAt: rec.LastReviewedAt,
		NextReviewAt:   rec.NextReviewAt,
		MemoryStrength: rec.MemoryStrength,
		CorrectCount:   rec.CorrectCount,
	}
}

func toRecord(rs *ReviewState) *store.ReviewRecord {
	return &store.ReviewRecord{
		LearnerID:      rs.LearnerID,
		CardID:         rs.CardID,
		Stage:          int(rs.Stage),
		LastReviewedAt: rs.LastReviewedAt,
		NextReviewAt:   rs.NextReviewAt,
		MemoryStrength: rs.MemoryStrength,
		CorrectCount:   rs.CorrectCount,
	}
}
