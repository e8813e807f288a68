// Package balance holds every tunable game-balance constant in one place.
// Formula code reads thresholds from a Config value instead of literals.
package balance

import "time"

// Day is the base unit the retention model counts in.
const Day = 24 * time.Hour

// Config groups the balance knobs of each engine component. The validate
// tags keep every formula well defined when values are overridden.
type Config struct {
	Retention Retention `mapstructure:"retention"`
	Scoring   Scoring   `mapstructure:"scoring"`
	Survival  Survival  `mapstructure:"survival"`
	Weakness  Weakness  `mapstructure:"weakness"`
	Ranking   Ranking   `mapstructure:"ranking"`
	Quota     Quota     `mapstructure:"quota"`
}

// Retention configures the forgetting-curve model and the stage ladder.
type Retention struct {
	// StageBase is the unit every ladder multiplier is applied to.
	StageBase time.Duration `mapstructure:"stage_base" validate:"gt=0"`

	// StageMultipliers maps stage 1..5 (index 0..4) to a multiple of StageBase.
	StageMultipliers [5]float64 `mapstructure:"stage_multipliers" validate:"dive,gt=0"`

	IntervalGrowth    float64       `mapstructure:"interval_growth" validate:"gte=1"`
	GraduatedInterval time.Duration `mapstructure:"graduated_interval" validate:"gt=0"`
	MissInterval      time.Duration `mapstructure:"miss_interval" validate:"gt=0"`

	BaselineStrength float64 `mapstructure:"baseline_strength" validate:"gt=0"`
	StrengthStep     float64 `mapstructure:"strength_step" validate:"gte=0"`
	MaxStrength      float64 `mapstructure:"max_strength" validate:"gtefield=BaselineStrength"`

	// FastAnswer is the response time below which a correct answer jumps two stages.
	FastAnswer time.Duration `mapstructure:"fast_answer" validate:"gte=0"`

	// FallbackDue is how many cards a review session takes when nothing is due.
	FallbackDue int `mapstructure:"fallback_due" validate:"gte=1"`
}

// Scoring configures the SHUN score formula and rank thresholds.
type Scoring struct {
	ComboDivisor  float64 `mapstructure:"combo_divisor" validate:"gt=0"`
	MaxSpeedBonus float64 `mapstructure:"max_speed_bonus" validate:"gte=0"`

	// QuestionLimit is the per-question time budget used for remaining rate.
	QuestionLimit time.Duration `mapstructure:"question_limit" validate:"gt=0"`

	// VocabQuestionLimit replaces QuestionLimit for vocabulary cards.
	// Zero falls back to QuestionLimit.
	VocabQuestionLimit time.Duration `mapstructure:"vocab_question_limit" validate:"gte=0"`

	RankS Threshold `mapstructure:"rank_s"`
	RankA Threshold `mapstructure:"rank_a"`
	RankB Threshold `mapstructure:"rank_b"`

	BasePoints BasePoints `mapstructure:"base_points"`
}

// Threshold is one rank floor. Zero fields are not checked.
type Threshold struct {
	Score       int64   `mapstructure:"score" validate:"gte=0"`
	MaxCombo    int     `mapstructure:"max_combo" validate:"gte=0"`
	CorrectRate float64 `mapstructure:"correct_rate" validate:"gte=0,lte=1"`
}

// Met reports whether a run clears every non-zero floor of t.
func (t Threshold) Met(score int64, maxCombo int, correctRate float64) bool {
	return score >= t.Score && maxCombo >= t.MaxCombo && correctRate >= t.CorrectRate
}

// BasePoints maps each rarity tier to the points a correct answer is worth.
type BasePoints struct {
	Common    int `mapstructure:"common" validate:"gt=0"`
	Uncommon  int `mapstructure:"uncommon" validate:"gt=0"`
	Rare      int `mapstructure:"rare" validate:"gt=0"`
	Epic      int `mapstructure:"epic" validate:"gt=0"`
	Legendary int `mapstructure:"legendary" validate:"gt=0"`
}

// Survival configures the countdown clock.
type Survival struct {
	Initial time.Duration `mapstructure:"initial" validate:"gt=0"`
	Max     time.Duration `mapstructure:"max" validate:"gtefield=Initial"`

	CorrectBonus  time.Duration `mapstructure:"correct_bonus" validate:"gte=0"`
	ComboBonus    time.Duration `mapstructure:"combo_bonus" validate:"gte=0"`
	ComboInterval int           `mapstructure:"combo_interval" validate:"gt=0"`
	WrongPenalty  time.Duration `mapstructure:"wrong_penalty" validate:"gte=0"`
	SkipPenalty   time.Duration `mapstructure:"skip_penalty" validate:"gte=0"`
	Stun          time.Duration `mapstructure:"stun" validate:"gte=0"`

	FeverEntryCombo int           `mapstructure:"fever_entry_combo" validate:"gt=0"`
	FeverDuration   time.Duration `mapstructure:"fever_duration" validate:"gte=0"`
	FeverBar        time.Duration `mapstructure:"fever_bar" validate:"gt=0"`

	RookieEdge time.Duration `mapstructure:"rookie_edge" validate:"gt=0"`
	AceEdge    time.Duration `mapstructure:"ace_edge" validate:"gt=0"`
	LegendEdge time.Duration `mapstructure:"legend_edge" validate:"gt=0"`

	// SpeedSteps are checked highest combo first.
	SpeedSteps []SpeedStep `mapstructure:"speed_steps" validate:"dive"`

	DoubleScoreCombo int `mapstructure:"double_score_combo" validate:"gt=0"`
}

// SpeedStep compresses the answer window once combo reaches MinCombo.
type SpeedStep struct {
	MinCombo   int     `mapstructure:"min_combo" validate:"gt=0"`
	Multiplier float64 `mapstructure:"multiplier" validate:"gte=1"`
}

// Weakness configures weak-category selection and question fetch sizes.
type Weakness struct {
	MinSamples int     `mapstructure:"min_samples" validate:"gte=1"`
	Threshold  float64 `mapstructure:"threshold" validate:"gte=0,lte=1"`
	Max        int     `mapstructure:"max" validate:"gte=1"`

	// HistoryWindow caps how many log entries feed the selector (0 = all).
	HistoryWindow int `mapstructure:"history_window" validate:"gte=0"`

	DefaultLimit int `mapstructure:"default_limit" validate:"gt=0"`
	MinLimit     int `mapstructure:"min_limit" validate:"gt=0"`
	MaxLimit     int `mapstructure:"max_limit" validate:"gtefield=MinLimit"`
}

// Ranking bounds leaderboard page sizes.
type Ranking struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"gt=0"`
	MinLimit     int `mapstructure:"min_limit" validate:"gt=0"`
	MaxLimit     int `mapstructure:"max_limit" validate:"gtefield=MinLimit"`
}

// Quota configures the free-play allowance.
type Quota struct {
	// FreePeriod is how long after first use play is unlimited.
	FreePeriod time.Duration `mapstructure:"free_period" validate:"gte=0"`

	DailyFreePlays int `mapstructure:"daily_free_plays" validate:"gte=0"`
}

// DefaultConfig returns the shipped game balance.
func DefaultConfig() Config {
	return Config{
		Retention: Retention{
			StageBase:         Day / 2,
			StageMultipliers:  [5]float64{0.5, 1, 2.5, 7, 30},
			IntervalGrowth:    2.5,
			GraduatedInterval: 365 * Day,
			MissInterval:      Day / 2,
			BaselineStrength:  0.5,
			StrengthStep:      0.5,
			MaxStrength:       10,
			FastAnswer:        3 * time.Second,
			FallbackDue:       5,
		},
		Scoring: Scoring{
			ComboDivisor:       10,
			MaxSpeedBonus:      0.5,
			QuestionLimit:      10 * time.Second,
			VocabQuestionLimit: 5 * time.Second,
			RankS:              Threshold{Score: 1_000_000, MaxCombo: 50},
			RankA:              Threshold{Score: 500_000, CorrectRate: 0.9},
			RankB:              Threshold{Score: 100_000},
			BasePoints: BasePoints{
				Common:    1000,
				Uncommon:  1200,
				Rare:      1500,
				Epic:      2000,
				Legendary: 3000,
			},
		},
		Survival: Survival{
			Initial:         30 * time.Second,
			Max:             60 * time.Second,
			CorrectBonus:    2 * time.Second,
			ComboBonus:      3 * time.Second,
			ComboInterval:   5,
			WrongPenalty:    5 * time.Second,
			SkipPenalty:     3 * time.Second,
			Stun:            200 * time.Millisecond,
			FeverEntryCombo: 15,
			FeverDuration:   10 * time.Second,
			FeverBar:        1500 * time.Millisecond,
			RookieEdge:      30 * time.Second,
			AceEdge:         60 * time.Second,
			LegendEdge:      120 * time.Second,
			SpeedSteps: []SpeedStep{
				{MinCombo: 10, Multiplier: 1.5},
				{MinCombo: 5, Multiplier: 1.2},
			},
			DoubleScoreCombo: 10,
		},
		Weakness: Weakness{
			MinSamples:    3,
			Threshold:     0.6,
			Max:           5,
			HistoryWindow: 0,
			DefaultLimit:  20,
			MinLimit:      10,
			MaxLimit:      50,
		},
		Ranking: Ranking{
			DefaultLimit: 20,
			MinLimit:     10,
			MaxLimit:     100,
		},
		Quota: Quota{
			FreePeriod:     7 * Day,
			DailyFreePlays: 1,
		},
	}
}

// ClampLimit bounds a requested question count, using DefaultLimit for n <= 0.
func (w Weakness) ClampLimit(n int) int {
	if n <= 0 {
		n = w.DefaultLimit
	}
	if n < w.MinLimit {
		return w.MinLimit
	}
	if n > w.MaxLimit {
		return w.MaxLimit
	}
	return n
}

// ClampLimit bounds a requested leaderboard size, using DefaultLimit for n <= 0.
func (r Ranking) ClampLimit(n int) int {
	if n <= 0 {
		n = r.DefaultLimit
	}
	return max(r.MinLimit, min(r.MaxLimit, n))
}
