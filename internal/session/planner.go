package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/closer/internal/balance"
	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/spacedrep"
	"github.com/abhisek/closer/internal/store"
	"github.com/abhisek/closer/internal/survival"
	"github.com/abhisek/closer/internal/weakness"
)

// Planner builds question queues from the card deck and learner history.
type Planner struct {
	Cards     store.CardRepo
	Answers   store.AnswerLogRepo
	Scheduler *spacedrep.Scheduler
	Balance   balance.Config
	Rand      *rand.Rand

	// Words adds the learner's registered words to the review mode. Nil
	// leaves the review mode to the deck's vocabulary cards.
	Words store.VocabularyRepo
}

// NewPlanner creates a planner. A nil rng gets a randomly seeded one.
func NewPlanner(cards store.CardRepo, answers store.AnswerLogRepo, sched *spacedrep.Scheduler, cfg balance.Config, rng *rand.Rand) *Planner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Planner{
		Cards:     cards,
		Answers:   answers,
		Scheduler: sched,
		Balance:   cfg,
		Rand:      rng,
	}
}

// BuildPlan creates the queue for one session. limit is clamped to the
// configured bounds; it is ignored by the review and survival modes.
func (p *Planner) BuildPlan(ctx context.Context, learnerID string, mode Mode, level survival.Level, limit int, now time.Time) (*Plan, error) {
	plan := &Plan{Mode: mode, Level: level}
	limit = p.Balance.Weakness.ClampLimit(limit)

	var err error
	switch mode {
	case ModeNational:
		plan.Cards, err = p.Cards.ListCards(ctx, store.CardQuery{Limit: limit})
	case ModeForYou:
		err = p.planForYou(ctx, plan, learnerID, limit)
	case ModeVocab:
		err = p.planReview(ctx, plan, learnerID, now)
	case ModeSurvival:
		plan.Cards, err = p.Cards.ListCards(ctx, store.CardQuery{Limit: p.Balance.Weakness.MaxLimit})
		p.shuffle(plan.Cards)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s plan: %w", mode, err)
	}
	return plan, nil
}

// planForYou serves weak-category questions first and fills the rest of
// the queue from the other cards. Without weak categories it behaves like
// the national mode.
func (p *Planner) planForYou(ctx context.Context, plan *Plan, learnerID string, limit int) error {
	weak, _, err := p.WeakCategories(ctx, learnerID)
	if err != nil {
		return err
	}

	if len(weak) > 0 {
		weakCards, err := p.Cards.ListCards(ctx, store.CardQuery{Categories: weak, Limit: limit})
		if err != nil {
			return err
		}
		if len(weakCards) > 0 {
			plan.WeakCategories = weak
			plan.Cards = weakCards
			if rest := limit - len(weakCards); rest > 0 {
				ids := make([]string, len(weakCards))
				for i, c := range weakCards {
					ids[i] = c.ID
				}
				others, err := p.Cards.ListCards(ctx, store.CardQuery{ExcludeIDs: ids, Limit: rest})
				if err != nil {
					return err
				}
				plan.Cards = append(plan.Cards, others...)
			}
			return nil
		}
	}

	plan.Cards, err = p.Cards.ListCards(ctx, store.CardQuery{Limit: limit})
	return err
}

// planReview queues every vocabulary card that is due, shuffled. The
// learner's registered words come before the deck. When nothing is due it
// serves the first few of them instead.
func (p *Planner) planReview(ctx context.Context, plan *Plan, learnerID string, now time.Time) error {
	deck, err := p.Cards.ListCards(ctx, store.CardQuery{Type: content.TypeVocabulary, Oldest: true})
	if err != nil {
		return err
	}
	words, err := p.wordCards(ctx, learnerID, deck)
	if err != nil {
		return err
	}
	deck = append(words, deck...)
	if len(deck) == 0 {
		return nil
	}

	ids := make([]string, len(deck))
	byID := make(map[string]content.Card, len(deck))
	for i, c := range deck {
		ids[i] = c.ID
		byID[c.ID] = c
	}

	due, err := p.Scheduler.DueCards(ctx, learnerID, ids, now)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		plan.Fallback = true
		plan.Cards = deck[:min(len(deck), p.Balance.Retention.FallbackDue)]
		return nil
	}

	plan.Cards = make([]content.Card, len(due))
	for i, id := range due {
		plan.Cards[i] = byID[id]
	}
	p.shuffle(plan.Cards)
	return nil
}

// wordCards builds a card for each registered word, newest first. Wrong
// options are drawn from the other words and the deck's vocabulary
// options. Words without enough distinct options are skipped.
func (p *Planner) wordCards(ctx context.Context, learnerID string, deck []content.Card) ([]content.Card, error) {
	if p.Words == nil {
		return nil, nil
	}
	words, err := p.Words.ListWords(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list registered words: %w", err)
	}

	var pool []string
	for _, w := range words {
		if len(w.Meanings) > 0 {
			pool = append(pool, w.Meanings[0])
		}
	}
	for _, c := range deck {
		pool = append(pool, c.Options[:]...)
	}

	cards := make([]content.Card, 0, len(words))
	for _, w := range words {
		p.Rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		c, ok := content.WordCard(w.Word, w.Meanings, pool, p.Rand.IntN(content.OptionCount), w.CreatedAt)
		if ok {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// WeakCategories reads the learner's answer history and returns the weak
// categories along with the full per-category breakdown.
func (p *Planner) WeakCategories(ctx context.Context, learnerID string) ([]string, []weakness.CategoryAccuracy, error) {
	recs, err := p.Answers.AnswerHistory(ctx, learnerID, p.Balance.Weakness.HistoryWindow)
	if err != nil {
		return nil, nil, fmt.Errorf("load answer history: %w", err)
	}
	history := make([]weakness.Answer, len(recs))
	for i, r := range recs {
		history[i] = weakness.Answer{Category: r.Category, Correct: r.Correct}
	}
	opts := weakness.OptionsFrom(p.Balance.Weakness)
	return weakness.SelectWeakCategories(history, opts), weakness.Aggregate(history), nil
}

func (p *Planner) shuffle(cards []content.Card) {
	p.Rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
