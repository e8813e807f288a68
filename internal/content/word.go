package content

import (
	"slices"
	"strings"
	"time"
)

// MaxMeanings caps how many meanings a registered word keeps.
const MaxMeanings = 3

// wordIDPrefix keeps registered-word cards apart from deck card IDs in
// the review state table.
const wordIDPrefix = "word:"

// NormalizeWord is the key a registered word is stored under.
func NormalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// CleanMeanings drops blank and repeated meanings and keeps the first
// MaxMeanings.
func CleanMeanings(meanings []string) []string {
	out := make([]string, 0, MaxMeanings)
	for _, m := range meanings {
		m = strings.TrimSpace(m)
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
		if len(out) == MaxMeanings {
			break
		}
	}
	return out
}

// WordCardID returns the card ID of a registered word.
func WordCardID(word string) string {
	return wordIDPrefix + NormalizeWord(word)
}

// IsWordCard reports whether a card was built from a registered word.
func IsWordCard(id string) bool {
	return strings.HasPrefix(id, wordIDPrefix)
}

// WordCard builds a vocabulary card that asks for the first meaning of a
// registered word. The wrong options are the first entries of pool that
// are not meanings of the word; the answer goes at correct. ok is false
// when the word has no meaning or pool is too small.
func WordCard(word string, meanings, pool []string, correct int, createdAt time.Time) (Card, bool) {
	meanings = CleanMeanings(meanings)
	if len(meanings) == 0 || correct < 0 || correct >= OptionCount {
		return Card{}, false
	}

	var wrong []string
	for _, p := range pool {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(meanings, p) || slices.Contains(wrong, p) {
			continue
		}
		wrong = append(wrong, p)
		if len(wrong) == OptionCount-1 {
			break
		}
	}
	if len(wrong) < OptionCount-1 {
		return Card{}, false
	}

	var opts [OptionCount]string
	for i, j := 0, 0; i < OptionCount; i++ {
		if i == correct {
			opts[i] = meanings[0]
			continue
		}
		opts[i] = wrong[j]
		j++
	}

	word = NormalizeWord(word)
	return Card{
		ID:           WordCardID(word),
		Prompt:       word,
		Options:      opts,
		CorrectIndex: correct,
		Type:         TypeVocabulary,
		Category:     "語彙",
		Difficulty:   "500",
		Explanation:  word + ": " + strings.Join(meanings, " / "),
		VocabMap:     map[string][]string{word: meanings},
		CreatedAt:    createdAt,
	}, true
}
