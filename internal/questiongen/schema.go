package questiongen

import (
	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/llm"
)

func anyStrings(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// BatchSchema is the generator's response shape. Vocabulary glosses come
// as a list of entries because strict structured output cannot express
// free-form object keys.
var BatchSchema = &llm.Schema{
	Name:        "toeic-part5-batch",
	Description: "A batch of TOEIC Part 5 fill-in-the-blank questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "A short business sentence with a single blank written as ____",
						},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 4,
							"maxItems": 4,
						},
						"correct_index": map[string]any{
							"type":    "integer",
							"minimum": 0,
							"maximum": 3,
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct, in Japanese, under 30 characters",
						},
						"category": map[string]any{
							"type": "string",
							"enum": anyStrings(content.Categories),
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"500", "700", "900"},
						},
						"vocab": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"word": map[string]any{"type": "string"},
									"meanings": map[string]any{
										"type":     "array",
										"items":    map[string]any{"type": "string"},
										"maxItems": 3,
									},
								},
								"required":             []any{"word", "meanings"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"question", "options", "correct_index", "explanation", "category", "difficulty", "vocab"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// ReviewSchema is the reviewer's response shape.
var ReviewSchema = &llm.Schema{
	Name:        "toeic-part5-review",
	Description: "A quality score for one TOEIC Part 5 question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
			"pass": map[string]any{"type": "boolean"},
			"reason": map[string]any{
				"type":        "string",
				"description": "Brief reason in Japanese, under 40 characters",
			},
		},
		"required":             []any{"score", "pass", "reason"},
		"additionalProperties": false,
	},
}
