// Package weakness finds the categories a learner keeps getting wrong so
// question delivery can lean toward them.
package weakness

import "github.com/abhisek/closer/internal/balance"

// Answer is one graded attempt, as read from the answer log.
type Answer struct {
	Category string
	Correct  bool
}

// CategoryAccuracy is the aggregated record of one category.
type CategoryAccuracy struct {
	Category string
	Correct  int
	Total    int
}

// Accuracy returns Correct/Total, or 0 for an empty record.
func (ca CategoryAccuracy) Accuracy() float64 {
	if ca.Total == 0 {
		return 0
	}
	return float64(ca.Correct) / float64(ca.Total)
}

// Options bounds the selection.
type Options struct {
	MinSamples int
	Threshold  float64
	Max        int
}

// OptionsFrom reads selection options from the balance config.
func OptionsFrom(cfg balance.Weakness) Options {
	return Options{
		MinSamples: cfg.MinSamples,
		Threshold:  cfg.Threshold,
		Max:        cfg.Max,
	}
}

// Aggregate counts answers per category. Categories appear in the order
// they are first seen in history.
func Aggregate(history []Answer) []CategoryAccuracy {
	index := make(map[string]int)
	var out []CategoryAccuracy
	for _, a := range history {
		i, ok := index[a.Category]
		if !ok {
			i = len(out)
			index[a.Category] = i
			out = append(out, CategoryAccuracy{Category: a.Category})
		}
		out[i].Total++
		if a.Correct {
			out[i].Correct++
		}
	}
	return out
}

// SelectWeakCategories returns up to opts.Max categories with at least
// opts.MinSamples answers and accuracy strictly below opts.Threshold, in
// first-seen order. An empty result means no bias should be applied.
func SelectWeakCategories(history []Answer, opts Options) []string {
	weak := []string{}
	for _, ca := range Aggregate(history) {
		if opts.Max > 0 && len(weak) >= opts.Max {
			break
		}
		if ca.Total >= opts.MinSamples && ca.Accuracy() < opts.Threshold {
			weak = append(weak, ca.Category)
		}
	}
	return weak
}
