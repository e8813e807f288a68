package questiongen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/closer/internal/content"
)

func validRaw() content.Raw {
	return content.Raw{
		Prompt:       "The manager will ____ the results at the meeting.",
		Options:      []string{"announce", "announcement", "announced", "announcing"},
		CorrectIndex: 0,
		Explanation:  "助動詞の後は原形",
		Category:     "品詞",
		Difficulty:   "500",
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*content.Raw)
		wantErr string
	}{
		{"valid", func(*content.Raw) {}, ""},
		{"empty question", func(q *content.Raw) { q.Prompt = "  " }, "question is empty"},
		{"no blank", func(q *content.Raw) { q.Prompt = "The manager will announce it." }, "exactly one ____"},
		{"two blanks", func(q *content.Raw) { q.Prompt = "____ will ____ it." }, "found 2"},
		{"three options", func(q *content.Raw) { q.Options = q.Options[:3] }, "expected 4 options"},
		{"empty option", func(q *content.Raw) { q.Options[2] = "" }, "option 2 is empty"},
		{"duplicate option", func(q *content.Raw) { q.Options[3] = "Announce" }, "duplicate option"},
		{"index too high", func(q *content.Raw) { q.CorrectIndex = 4 }, "out of range"},
		{"negative index", func(q *content.Raw) { q.CorrectIndex = -1 }, "out of range"},
		{"unknown category", func(q *content.Raw) { q.Category = "reading" }, "unknown category"},
		{"unknown difficulty", func(q *content.Raw) { q.Difficulty = "600" }, "unknown difficulty"},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validRaw()
			q.Options = append([]string(nil), q.Options...)
			tt.mutate(&q)

			verr := v.Validate(q)
			if tt.wantErr == "" {
				assert.Nil(t, verr)
				return
			}
			if assert.NotNil(t, verr) {
				assert.Equal(t, "structural", verr.Validator)
				assert.Contains(t, verr.Error(), tt.wantErr)
			}
		})
	}
}

func TestNormalizePrompt(t *testing.T) {
	d := dedup{}
	assert.True(t, d.add("The  report is ____ ."))
	assert.False(t, d.add("the report IS ____ ."))
	assert.True(t, d.add("The report was ____ ."))
}
