// Package questiongen writes new TOEIC Part 5 cards with an LLM: a batch
// is generated, checked structurally, scored by an LLM reviewer and the
// survivors are stored as cards.
package questiongen

import (
	"context"

	"github.com/abhisek/closer/internal/content"
)

// Generator produces candidate questions.
type Generator interface {
	// Generate returns up to n questions. Fewer is not an error.
	Generate(ctx context.Context, n int) ([]content.Raw, error)
}

// Reviewer scores a single question.
type Reviewer interface {
	Review(ctx context.Context, q content.Raw) (Verdict, error)
}

// Verdict is a reviewer's judgement of one question.
type Verdict struct {
	Score  int
	Pass   bool
	Reason string
}

// Result summarizes one pipeline run.
type Result struct {
	Attempts     int
	Generated    int
	Invalid      int // failed a structural check or duplicated an earlier question
	ReviewErrors int
	Rejected     int // scored below the threshold
	Passed       int
	Saved        int
}
