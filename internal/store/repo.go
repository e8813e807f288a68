package store

import (
	"context"
	"time"

	"github.com/abhisek/closer/internal/content"
)

// ReviewRecord is the stored spaced repetition state of one (learner, card) pair.
type ReviewRecord struct {
	LearnerID      string
	CardID         string
	Stage          int
	LastReviewedAt time.Time
	NextReviewAt   time.Time
	MemoryStrength float64
	CorrectCount   int
}

// ReviewRepo reads and writes per-card review state.
type ReviewRepo interface {
	// GetReview returns the state for the pair, or (nil, nil) if the card
	// was never reviewed.
	GetReview(ctx context.Context, learnerID, cardID string) (*ReviewRecord, error)

	// PutReview overwrites the state for the record's key.
	PutReview(ctx context.Context, rec *ReviewRecord) error

	// ListReviews returns every review state of a learner.
	ListReviews(ctx context.Context, learnerID string) ([]*ReviewRecord, error)

	// DeleteReviews removes all review state of a learner.
	DeleteReviews(ctx context.Context, learnerID string) error
}

// AnswerRecord is one entry in a learner's answer log.
type AnswerRecord struct {
	Seq          int64
	LearnerID    string
	CardID       string
	Category     string
	Correct      bool
	ResponseTime time.Duration
	AnsweredAt   time.Time
}

// AnswerLogRepo appends to and reads a learner's answer history.
type AnswerLogRepo interface {
	AppendAnswer(ctx context.Context, rec AnswerRecord) error

	// AnswerHistory returns up to limit entries, newest first (0 = all).
	AnswerHistory(ctx context.Context, learnerID string, limit int) ([]AnswerRecord, error)

	DeleteAnswers(ctx context.Context, learnerID string) error
}

// RunRecord is the stored result of one finished play session.
type RunRecord struct {
	ID          string
	LearnerID   string
	Mode        string
	Score       int64
	MaxCombo    int
	CorrectRate float64
	Elapsed     time.Duration
	Rank        string
	CreatedAt   time.Time
}

// RunRepo stores run results and serves the leaderboard.
type RunRepo interface {
	SaveRun(ctx context.Context, rec RunRecord) error

	// Leaderboard returns the best runs ordered by score descending, then
	// elapsed time ascending. An empty mode covers every mode.
	Leaderboard(ctx context.Context, mode string, limit int) ([]RunRecord, error)

	// BestRun returns a learner's best run in mode, or ErrNotFound.
	BestRun(ctx context.Context, learnerID, mode string) (*RunRecord, error)

	// History returns a learner's runs, newest first (0 = all).
	History(ctx context.Context, learnerID string, limit int) ([]RunRecord, error)

	DeleteRuns(ctx context.Context, learnerID string) error
}

// VocabularyRecord is a word a learner saved from a card's vocab map.
type VocabularyRecord struct {
	LearnerID    string
	Word         string
	Meanings     []string
	SourceCardID string
	CreatedAt    time.Time
}

// VocabularyRepo stores each learner's registered words.
type VocabularyRepo interface {
	// RegisterWord saves the word, replacing the meanings of an earlier
	// registration. The word is normalized and meanings are capped at
	// content.MaxMeanings.
	RegisterWord(ctx context.Context, rec VocabularyRecord) error

	// ListWords returns a learner's words, newest first.
	ListWords(ctx context.Context, learnerID string) ([]VocabularyRecord, error)

	DeleteWords(ctx context.Context, learnerID string) error
}

// CardQuery filters card listings. Results are newest first unless Oldest is set.
type CardQuery struct {
	Categories []string
	ExcludeIDs []string
	Type       content.CardType
	Limit      int
	Oldest     bool
}

// CardRepo stores the drill deck.
type CardRepo interface {
	SaveCards(ctx context.Context, cards []content.Card) error
	CountCards(ctx context.Context) (int, error)
	ListCards(ctx context.Context, q CardQuery) ([]content.Card, error)
	GetCards(ctx context.Context, ids []string) ([]content.Card, error)
}

// PlayRepo tracks first use and daily play counts for the free-play quota.
type PlayRepo interface {
	// FirstUse returns when the learner first played, recording now if
	// this is the first call.
	FirstUse(ctx context.Context, learnerID string, now time.Time) (time.Time, error)

	PlayCount(ctx context.Context, learnerID, day string) (int, error)
	IncrementPlay(ctx context.Context, learnerID, day string) error
	DeletePlays(ctx context.Context, learnerID string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage sums recorded LLM traffic.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo records LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMUsageSince sums requests recorded at or after since.
	LLMUsageSince(ctx context.Context, since time.Time) (LLMUsage, error)
}
