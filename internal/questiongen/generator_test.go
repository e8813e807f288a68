package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/closer/internal/llm"
)

func batchJSON(t *testing.T, start, n int) json.RawMessage {
	t.Helper()
	qs := make([]questionOutput, n)
	for i := range qs {
		qs[i] = questionOutput{
			Question:     fmt.Sprintf("Item %d must be ____ by Friday.", start+i),
			Options:      []string{"ship", "shipped", "shipping", "shipment"},
			CorrectIndex: 1,
			Explanation:  "受動態",
			Category:     "時制",
			Difficulty:   "700",
			Vocab: []vocabEntry{
				{Word: " Ship ", Meanings: []string{"発送する", "船"}},
				{Word: "", Meanings: []string{"x"}},
			},
		}
	}
	b, err := json.Marshal(batchOutput{Questions: qs})
	require.NoError(t, err)
	return b
}

func TestLLMGenerator_Batches(t *testing.T) {
	calls := 0
	mock := &llm.MockProvider{}
	mock.Respond = func(req llm.Request) llm.MockResponse {
		calls++
		return llm.MockResponse{Content: batchJSON(t, calls*100, 4)}
	}
	cfg := DefaultConfig()
	cfg.BatchSize = 4

	got, err := NewGenerator(mock, cfg).Generate(context.Background(), 10)
	require.NoError(t, err)

	// 4 + 4 + 4 truncated to the 2 still wanted.
	assert.Len(t, got, 10)
	assert.Equal(t, 3, mock.CallCount())

	first := got[0]
	assert.Equal(t, "Item 100 must be ____ by Friday.", first.Prompt)
	assert.Equal(t, 1, first.CorrectIndex)
	assert.Equal(t, map[string][]string{"ship": {"発送する", "船"}}, first.VocabMap)

	req := mock.Calls[0]
	assert.Same(t, BatchSchema, req.Schema)
	assert.Contains(t, req.System, "語彙")
	assert.Contains(t, req.Messages[0].Content, "Write exactly 4 questions.")
	assert.Contains(t, req.Messages[0].Content, "None")

	// Later batches list what was already written.
	assert.Contains(t, mock.Calls[1].Messages[0].Content, "1. Item 100 must be ____ by Friday.")
	assert.Contains(t, mock.Calls[2].Messages[0].Content, "Write exactly 2 questions.")
}

func TestLLMGenerator_EmptyBatchStops(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})
	got, err := NewGenerator(mock, DefaultConfig()).Generate(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, mock.CallCount())
}

func TestLLMGenerator_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	_, err := NewGenerator(mock, DefaultConfig()).Generate(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "generate batch:"))
}

func TestBuildGenerateMessage_KeepsRecentPrior(t *testing.T) {
	prior := []string{"a", "b", "c"}
	msg := buildGenerateMessage(3, prior, 2)
	assert.NotContains(t, msg, "1. a")
	assert.Contains(t, msg, "1. b\n2. c")
}

func TestLLMReviewer(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantPass bool
	}{
		{"above threshold", `{"score":90,"pass":true,"reason":"良い"}`, true},
		{"at threshold", `{"score":85,"pass":false,"reason":"ok"}`, true},
		{"below threshold", `{"score":84,"pass":true,"reason":"正解が曖昧"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.reply)})
			v, err := NewReviewer(mock, DefaultConfig()).Review(context.Background(), validRaw())
			require.NoError(t, err)
			assert.Equal(t, tt.wantPass, v.Pass)

			req := mock.Calls[0]
			assert.Same(t, ReviewSchema, req.Schema)
			assert.Contains(t, req.System, "85 or higher")
			assert.Contains(t, req.Messages[0].Content, "(A) announce")
			assert.Contains(t, req.Messages[0].Content, "Intended answer: (A)")
		})
	}
}

func TestLLMReviewer_Error(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	_, err := NewReviewer(mock, DefaultConfig()).Review(context.Background(), validRaw())
	assert.ErrorContains(t, err, "parse review")
}
