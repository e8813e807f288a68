package content

import (
	"context"
	"fmt"
	"time"
)

// CardStore is the persistence the content package writes into.
type CardStore interface {
	CountCards(ctx context.Context) (int, error)
	SaveCards(ctx context.Context, cards []Card) error
}

var (
	verbOptionsA = [OptionCount]string{"発表する", "買収する", "実施する", "延期する"}
	verbOptionsB = [OptionCount]string{"確実にする", "超える", "期限が切れる", "特集する"}
)

// SeedCards returns the built-in starter deck stamped with now.
func SeedCards(now time.Time) []Card {
	words := []struct {
		id, prompt string
		options    [OptionCount]string
		correct    int
	}{
		{"seed-1", "announce", verbOptionsA, 0},
		{"seed-2", "acquire", verbOptionsA, 1},
		{"seed-3", "conduct", verbOptionsA, 2},
		{"seed-4", "postpone", verbOptionsA, 3},
		{"seed-5", "ensure", verbOptionsB, 0},
		{"seed-6", "exceed", verbOptionsB, 1},
		{"seed-7", "expire", verbOptionsB, 2},
		{"seed-8", "feature", verbOptionsB, 3},
	}

	cards := make([]Card, len(words))
	for i, w := range words {
		cards[i] = Card{
			ID:           w.id,
			Prompt:       w.prompt,
			Options:      w.options,
			CorrectIndex: w.correct,
			Type:         TypeVocabulary,
			Category:     "語彙",
			Difficulty:   "500",
			VocabMap:     map[string][]string{},
			// Later cards get later timestamps so insertion order survives.
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
	}
	return cards
}

// SeedIfEmpty inserts the starter deck when the store has no cards.
// It returns the number of cards inserted.
func SeedIfEmpty(ctx context.Context, cs CardStore, now time.Time) (int, error) {
	n, err := cs.CountCards(ctx)
	if err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	cards := SeedCards(now)
	if err := cs.SaveCards(ctx, cards); err != nil {
		return 0, fmt.Errorf("save seed cards: %w", err)
	}
	return len(cards), nil
}
