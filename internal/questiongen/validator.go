package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/scoring"
)

// Blank marks the gap in a question sentence.
const Blank = "____"

// Validator checks a generated question before it is reviewed.
// Implementations must be safe for concurrent use.
type Validator interface {
	Name() string
	Validate(q content.Raw) *ValidationError
}

// ValidationError describes why a question failed a check.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the chain every generated question goes through.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}}
}

// StructuralValidator checks the shape of a question: four distinct
// non-empty options, an in-range answer, one blank, and known category and
// difficulty values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q content.Raw) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	prompt := strings.TrimSpace(q.Prompt)
	if prompt == "" {
		return fail("question is empty")
	}
	if n := strings.Count(prompt, Blank); n != 1 {
		return fail("question must contain exactly one %s, found %d", Blank, n)
	}
	if len(q.Options) != content.OptionCount {
		return fail("expected %d options, got %d", content.OptionCount, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return fail("option %d is empty", i)
		}
		if seen[key] {
			return fail("duplicate option %q", opt)
		}
		seen[key] = true
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= content.OptionCount {
		return fail("correct_index %d out of range", q.CorrectIndex)
	}
	if !content.IsKnownCategory(q.Category) {
		return fail("unknown category %q", q.Category)
	}
	if !scoring.Difficulty(q.Difficulty).Valid() {
		return fail("unknown difficulty %q", q.Difficulty)
	}
	return nil
}
