package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/llm"
)

// LLMReviewer implements Reviewer. The pass decision is made from the
// score against Config.MinScore, not from the model's own flag.
type LLMReviewer struct {
	provider llm.Provider
	config   Config
}

func NewReviewer(provider llm.Provider, cfg Config) *LLMReviewer {
	return &LLMReviewer{provider: provider, config: cfg}
}

type reviewOutput struct {
	Score  int    `json:"score"`
	Pass   bool   `json:"pass"`
	Reason string `json:"reason"`
}

func (r *LLMReviewer) Review(ctx context.Context, q content.Raw) (Verdict, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReview)

	resp, err := r.provider.Generate(ctx, llm.Request{
		System: fmt.Sprintf(reviewerPrompt, r.config.MinScore),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReviewMessage(q)},
		},
		Schema:      ReviewSchema,
		MaxTokens:   256,
		Temperature: r.config.ReviewTemperature,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("review question: %w", err)
	}

	var out reviewOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Verdict{}, fmt.Errorf("parse review: %w", err)
	}
	return Verdict{
		Score:  out.Score,
		Pass:   out.Score >= r.config.MinScore,
		Reason: out.Reason,
	}, nil
}
