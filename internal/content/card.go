// Package content defines drill cards and the ways they enter the store:
// the built-in seed set, JSON content packs, XLSX sheets and the LLM pipeline.
package content

import (
	"time"

	"github.com/abhisek/closer/internal/scoring"
)

// CardType distinguishes vocabulary cards from grammar cards.
type CardType string

const (
	TypeVocabulary CardType = "vocabulary"
	TypeGrammar    CardType = "grammar"
)

// DefaultCategory is used for cards and answers with no category.
const DefaultCategory = "その他"

// Categories is the TOEIC Part 5 taxonomy, in display order.
var Categories = []string{"品詞", "時制", "前置詞", "語彙", "接続詞", "代名詞", DefaultCategory}

// OptionCount is the number of answer options on every card.
const OptionCount = 4

// Card is one four-option drill item.
type Card struct {
	ID           string              `json:"id"`
	Prompt       string              `json:"prompt"`
	Options      [OptionCount]string `json:"options"`
	CorrectIndex int                 `json:"correct_index"`
	Type         CardType            `json:"type"`
	Category     string              `json:"category"`
	Difficulty   scoring.Difficulty  `json:"difficulty"`
	Explanation  string              `json:"explanation,omitempty"`
	VocabMap     map[string][]string `json:"vocab_map,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// IsCorrect reports whether choice is the correct option index.
func (c *Card) IsCorrect(choice int) bool {
	return choice == c.CorrectIndex
}

// CorrectOption returns the text of the correct option.
func (c *Card) CorrectOption() string {
	if c.CorrectIndex < 0 || c.CorrectIndex >= OptionCount {
		return ""
	}
	return c.Options[c.CorrectIndex]
}

// Rarity returns the scoring tier derived from the card's difficulty.
func (c *Card) Rarity() scoring.Rarity {
	return scoring.RarityFromDifficulty(c.Difficulty)
}

// IsKnownCategory reports whether name belongs to the taxonomy.
func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
