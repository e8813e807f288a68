package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt":   map[string]any{"type": "string", "description": "sentence with ____"},
			"options":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 4, "maxItems": 4},
			"correct":  map[string]any{"type": "integer"},
			"category": map[string]any{"type": "string", "enum": []string{"時制", "語彙"}},
		},
		"required": []any{"prompt", "options"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("len(Properties) = %d, want 4", len(s.Properties))
	}
	if p := s.Properties["prompt"]; p.Type != genai.TypeString || p.Description == "" {
		t.Errorf("prompt = %+v", p)
	}
	opts := s.Properties["options"]
	if opts.Type != genai.TypeArray || opts.Items.Type != genai.TypeString {
		t.Errorf("options = %+v", opts)
	}
	if opts.MinItems == nil || *opts.MinItems != 4 || opts.MaxItems == nil || *opts.MaxItems != 4 {
		t.Errorf("options bounds = %v..%v, want 4..4", opts.MinItems, opts.MaxItems)
	}
	if s.Properties["correct"].Type != genai.TypeInteger {
		t.Errorf("correct type = %s", s.Properties["correct"].Type)
	}
	if got := s.Properties["category"].Enum; len(got) != 2 {
		t.Errorf("category enum = %v", got)
	}
	if len(s.Required) != 2 {
		t.Errorf("Required = %v", s.Required)
	}
}
