package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestMockProvider_Script(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"score":90}`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrRateLimit{}},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "reviewer"})
	if err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}
	if string(resp.Content) != `{"score":90}` || resp.Usage.InputTokens != 12 {
		t.Errorf("first response = %s (%+v)", resp.Content, resp.Usage)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("second Generate() = %v, want ErrRateLimit", err)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("exhausted Generate() = %v, want ErrProviderUnavailable", err)
	}

	if mock.CallCount() != 3 || mock.Calls[0].System != "reviewer" {
		t.Errorf("recorded calls = %d, first system %q", mock.CallCount(), mock.Calls[0].System)
	}
}

func TestMockProvider_Respond(t *testing.T) {
	mock := NewMockProvider()
	mock.Respond = func(req Request) MockResponse {
		return MockResponse{Content: json.RawMessage(`"` + req.Messages[0].Content + `"`)}
	}
	for _, in := range []string{"a", "b"} {
		resp, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: in}}})
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if got := string(resp.Content); got != `"`+in+`"` {
			t.Errorf("Generate(%q) = %s", in, got)
		}
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if got := PurposeFrom(ctx); got != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q, want unknown", got)
	}
	if got := PurposeFrom(WithPurpose(ctx, PurposeReview)); got != PurposeReview {
		t.Errorf("PurposeFrom() = %q, want %q", got, PurposeReview)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock", Config{Provider: ProviderMock}, false},
		{"unknown", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, env := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}

	if _, ok := DiscoverConfig(DefaultConfig()); ok {
		t.Error("DiscoverConfig() found a key with none set")
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	cfg, ok := DiscoverConfig(DefaultConfig())
	if !ok {
		t.Fatal("DiscoverConfig() = false, want true")
	}
	if cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g-key" {
		t.Errorf("DiscoverConfig() = %q/%q, want gemini/g-key", cfg.Provider, cfg.Gemini.APIKey)
	}
}

func TestWithModelOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.Model = "gpt-4.1-mini"

	got := cfg.WithModelOverride()
	if got.OpenAI.Model != "gpt-4.1-mini" {
		t.Errorf("OpenAI.Model = %q, want gpt-4.1-mini", got.OpenAI.Model)
	}
	if got.Anthropic.Model != cfg.Anthropic.Model {
		t.Errorf("Anthropic.Model changed to %q", got.Anthropic.Model)
	}
}

func TestLookupCost(t *testing.T) {
	c, ok := LookupCost("claude-haiku")
	if !ok {
		t.Fatal("LookupCost(claude-haiku) not found")
	}
	if got := c.Cost(1_000_000, 200_000); math.Abs(got-2) > 1e-9 {
		t.Errorf("Cost() = %v, want 2", got)
	}
	if _, ok := LookupCost("no-such-model"); ok {
		t.Error("LookupCost(unknown) = true, want false")
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		models map[string]string
		in     string
		want   string
	}{
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{geminiModels, "gemini-flash", "gemini-2.5-flash"},
		{openaiModels, "gpt-mini", "gpt-4.1-mini"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
