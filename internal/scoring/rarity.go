package scoring

import "github.com/abhisek/closer/internal/balance"

// Difficulty is the authored TOEIC score band of a card.
type Difficulty string

const (
	Difficulty500 Difficulty = "500"
	Difficulty700 Difficulty = "700"
	Difficulty900 Difficulty = "900"
)

// Valid reports whether d is one of the three authored bands.
func (d Difficulty) Valid() bool {
	switch d {
	case Difficulty500, Difficulty700, Difficulty900:
		return true
	}
	return false
}

// Rarity is the value tier a card is scored at.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// RarityFromDifficulty maps a difficulty band to a rarity. Unknown or
// empty difficulties map to the most common tier.
func RarityFromDifficulty(d Difficulty) Rarity {
	switch d {
	case Difficulty900:
		return RarityRare
	case Difficulty700:
		return RarityUncommon
	default:
		return RarityCommon
	}
}

// BasePointsFor returns the points a correct answer on rarity r is worth.
// Unknown rarities are scored as common.
func BasePointsFor(bp balance.BasePoints, r Rarity) int {
	switch r {
	case RarityUncommon:
		return bp.Uncommon
	case RarityRare:
		return bp.Rare
	case RarityEpic:
		return bp.Epic
	case RarityLegendary:
		return bp.Legendary
	default:
		return bp.Common
	}
}
