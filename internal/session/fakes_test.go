package session

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/scoring"
	"github.com/abhisek/closer/internal/store"
)

var epoch = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

// makeCards returns n cards in category cat, created one minute apart
// starting at epoch. IDs are prefix-00, prefix-01, ...
func makeCards(prefix, cat string, typ content.CardType, n int) []content.Card {
	cards := make([]content.Card, n)
	for i := range cards {
		cards[i] = content.Card{
			ID:           fmt.Sprintf("%s-%02d", prefix, i),
			Prompt:       "The report was ____ on time.",
			Options:      [4]string{"submit", "submitted", "submitting", "submits"},
			CorrectIndex: 1,
			Type:         typ,
			Category:     cat,
			Difficulty:   scoring.Difficulty500,
			CreatedAt:    epoch.Add(time.Duration(i) * time.Minute),
		}
	}
	return cards
}

type memCardRepo struct {
	cards []content.Card
}

func (m *memCardRepo) SaveCards(_ context.Context, cards []content.Card) error {
	m.cards = append(m.cards, cards...)
	return nil
}

func (m *memCardRepo) CountCards(context.Context) (int, error) {
	return len(m.cards), nil
}

func (m *memCardRepo) ListCards(_ context.Context, q store.CardQuery) ([]content.Card, error) {
	var out []content.Card
	for _, c := range m.cards {
		if len(q.Categories) > 0 && !slices.Contains(q.Categories, c.Category) {
			continue
		}
		if slices.Contains(q.ExcludeIDs, c.ID) {
			continue
		}
		if q.Type != "" && c.Type != q.Type {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			if q.Oldest {
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memCardRepo) GetCards(_ context.Context, ids []string) ([]content.Card, error) {
	var out []content.Card
	for _, id := range ids {
		for _, c := range m.cards {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type memAnswerRepo struct {
	recs      []store.AnswerRecord
	appendErr error
}

func (m *memAnswerRepo) AppendAnswer(_ context.Context, rec store.AnswerRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	rec.Seq = int64(len(m.recs) + 1)
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memAnswerRepo) AnswerHistory(_ context.Context, learnerID string, limit int) ([]store.AnswerRecord, error) {
	var out []store.AnswerRecord
	for i := len(m.recs) - 1; i >= 0; i-- {
		if m.recs[i].LearnerID == learnerID {
			out = append(out, m.recs[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memAnswerRepo) DeleteAnswers(context.Context, string) error {
	m.recs = nil
	return nil
}

type memRunRepo struct {
	runs       []store.RunRecord
	saveErr    error
	historyErr error
}

func (m *memRunRepo) SaveRun(_ context.Context, rec store.RunRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, rec)
	return nil
}

func (m *memRunRepo) Leaderboard(context.Context, string, int) ([]store.RunRecord, error) {
	return m.runs, nil
}

func (m *memRunRepo) BestRun(context.Context, string, string) (*store.RunRecord, error) {
	return nil, store.ErrNotFound
}

func (m *memRunRepo) History(_ context.Context, learnerID string, _ int) ([]store.RunRecord, error) {
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	var out []store.RunRecord
	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].LearnerID == learnerID {
			out = append(out, m.runs[i])
		}
	}
	return out, nil
}

func (m *memRunRepo) DeleteRuns(context.Context, string) error {
	m.runs = nil
	return nil
}

type memReviewRepo struct {
	recs   map[string]*store.ReviewRecord
	putErr error
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{recs: make(map[string]*store.ReviewRecord)}
}

func (m *memReviewRepo) GetReview(_ context.Context, learnerID, cardID string) (*store.ReviewRecord, error) {
	rec, ok := m.recs[learnerID+"/"+cardID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memReviewRepo) PutReview(_ context.Context, rec *store.ReviewRecord) error {
	if m.putErr != nil {
		return m.putErr
	}
	cp := *rec
	m.recs[rec.LearnerID+"/"+rec.CardID] = &cp
	return nil
}

func (m *memReviewRepo) ListReviews(_ context.Context, learnerID string) ([]*store.ReviewRecord, error) {
	var out []*store.ReviewRecord
	for _, rec := range m.recs {
		if rec.LearnerID == learnerID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memReviewRepo) DeleteReviews(context.Context, string) error {
	clear(m.recs)
	return nil
}

type memWordRepo struct {
	words []store.VocabularyRecord
}

func (m *memWordRepo) RegisterWord(_ context.Context, rec store.VocabularyRecord) error {
	rec.Word = content.NormalizeWord(rec.Word)
	m.words = append([]store.VocabularyRecord{rec}, m.words...)
	return nil
}

func (m *memWordRepo) ListWords(context.Context, string) ([]store.VocabularyRecord, error) {
	return m.words, nil
}

func (m *memWordRepo) DeleteWords(context.Context, string) error {
	m.words = nil
	return nil
}
