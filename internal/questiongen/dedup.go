package questiongen

import "strings"

// dedup remembers normalized prompts seen during a run.
type dedup map[string]struct{}

// normalizePrompt lowercases and collapses whitespace so trivially
// reformatted repeats compare equal.
func normalizePrompt(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// add reports false when prompt was already seen.
func (d dedup) add(prompt string) bool {
	key := normalizePrompt(prompt)
	if _, ok := d[key]; ok {
		return false
	}
	d[key] = struct{}{}
	return true
}
