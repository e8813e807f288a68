package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/llm"
)

// maxPriorPrompts bounds the dedup list sent with each batch request.
const maxPriorPrompts = 40

// LLMGenerator implements Generator by asking the provider for batches of
// at most Config.BatchSize questions.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

func NewGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question     string       `json:"question"`
	Options      []string     `json:"options"`
	CorrectIndex int          `json:"correct_index"`
	Explanation  string       `json:"explanation"`
	Category     string       `json:"category"`
	Difficulty   string       `json:"difficulty"`
	Vocab        []vocabEntry `json:"vocab"`
}

type vocabEntry struct {
	Word     string   `json:"word"`
	Meanings []string `json:"meanings"`
}

func (q questionOutput) raw() content.Raw {
	vocab := make(map[string][]string, len(q.Vocab))
	for _, v := range q.Vocab {
		word := strings.ToLower(strings.TrimSpace(v.Word))
		if word == "" {
			continue
		}
		vocab[word] = v.Meanings
	}
	return content.Raw{
		Prompt:       q.Question,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		Category:     q.Category,
		Difficulty:   q.Difficulty,
		VocabMap:     vocab,
	}
}

// Generate requests n questions in batches. A failed batch fails the call.
func (g *LLMGenerator) Generate(ctx context.Context, n int) ([]content.Raw, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGenerate)

	batchSize := g.config.BatchSize
	if batchSize <= 0 {
		batchSize = n
	}

	var (
		out   []content.Raw
		prior []string
	)
	for len(out) < n {
		want := min(batchSize, n-len(out))
		batch, err := g.generateBatch(ctx, want, prior)
		if err != nil {
			return out, err
		}
		if len(batch) == 0 {
			break
		}
		if len(batch) > want {
			batch = batch[:want]
		}
		for _, q := range batch {
			prior = append(prior, q.Prompt)
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (g *LLMGenerator) generateBatch(ctx context.Context, n int, prior []string) ([]content.Raw, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemGeneratorPrompt(),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerateMessage(n, prior, maxPriorPrompts)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate batch: %w", err)
	}

	var batch batchOutput
	if err := json.Unmarshal(resp.Content, &batch); err != nil {
		return nil, fmt.Errorf("parse batch: %w", err)
	}
	out := make([]content.Raw, len(batch.Questions))
	for i, q := range batch.Questions {
		out[i] = q.raw()
	}
	return out, nil
}
