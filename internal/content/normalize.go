package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/closer/internal/scoring"
)

// Raw is a card as it arrives from an importer or the LLM, before defaults
// are applied.
type Raw struct {
	ID           string              `json:"id,omitempty"`
	Prompt       string              `json:"question"`
	Options      []string            `json:"options"`
	CorrectIndex int                 `json:"correct_index"`
	Type         string              `json:"type,omitempty"`
	Category     string              `json:"category"`
	Difficulty   string              `json:"difficulty"`
	Explanation  string              `json:"explanation,omitempty"`
	VocabMap     map[string][]string `json:"vocab_map,omitempty"`
}

// Normalize turns raw into a storable Card.
//
// Options that are not exactly four become four empty strings, an
// out-of-range correct index becomes 0, an unknown difficulty becomes 700
// and a blank category becomes DefaultCategory. A missing ID is replaced
// with a fresh UUID.
func Normalize(raw Raw, now time.Time) Card {
	c := Card{
		ID:           strings.TrimSpace(raw.ID),
		Prompt:       strings.TrimSpace(raw.Prompt),
		CorrectIndex: raw.CorrectIndex,
		Type:         normalizeType(raw.Type, raw.Category),
		Category:     strings.TrimSpace(raw.Category),
		Difficulty:   scoring.Difficulty(strings.TrimSpace(raw.Difficulty)),
		Explanation:  strings.TrimSpace(raw.Explanation),
		VocabMap:     raw.VocabMap,
		CreatedAt:    now,
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if len(raw.Options) == OptionCount {
		copy(c.Options[:], raw.Options)
	}
	if c.CorrectIndex < 0 || c.CorrectIndex >= OptionCount {
		c.CorrectIndex = 0
	}
	if !c.Difficulty.Valid() {
		c.Difficulty = scoring.Difficulty700
	}
	if c.Category == "" {
		c.Category = DefaultCategory
	}
	if c.VocabMap == nil {
		c.VocabMap = map[string][]string{}
	}
	return c
}

// normalizeType falls back to the category when no type is given: the
// vocabulary category is a vocabulary card, everything else is grammar.
func normalizeType(t, category string) CardType {
	switch CardType(strings.ToLower(strings.TrimSpace(t))) {
	case TypeVocabulary:
		return TypeVocabulary
	case TypeGrammar:
		return TypeGrammar
	}
	if category == "語彙" || category == "" {
		return TypeVocabulary
	}
	return TypeGrammar
}
