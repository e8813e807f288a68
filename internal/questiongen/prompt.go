package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/closer/internal/content"
)

const generatorPrompt = `You are a TOEIC Part 5 question writer.

Rules:
- Half of the questions test vocabulary (word meaning), half test grammar (part of speech, tense, preposition, conjunction, pronoun).
- Spread difficulty evenly over "500", "700" and "900".
- Topics: business, logistics, HR, finance, marketing, office, contracts.
- Each question is a short sentence with exactly one blank written as ____ (four underscores).
- Give exactly 4 options. For vocabulary use same-root words of different parts of speech to trick advanced learners. For grammar use plausible distractors.
- correct_index is 0 for A, 1 for B, 2 for C, 3 for D.
- explanation says why the answer is correct, in Japanese, under 30 characters.
- category is one of: %s.
- vocab lists every content word that appears in the question or the options: the word in lowercase and up to 3 TOEIC-frequent Japanese meanings. Do not skip any word.
- Do not repeat a question from the "already written" list.`

const reviewerPrompt = `You are a TOEIC Part 5 quality checker. Score the question from 0 to 100:
1) Exactly one correct answer, no ambiguity: up to 50 points.
2) Natural business English, idiomatic and professional: up to 50 points.

Set "pass" to true if the score is %d or higher. In "reason" say briefly, in Japanese under 40 characters, what to fix (e.g. "正解が曖昧", "不自然な英語").`

func systemGeneratorPrompt() string {
	return fmt.Sprintf(generatorPrompt, strings.Join(content.Categories, ", "))
}

// buildGenerateMessage asks for n questions. prior holds prompts already
// written in this run; only the most recent maxPrior are listed.
func buildGenerateMessage(n int, prior []string, maxPrior int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write exactly %d questions.\n", n)
	b.WriteString("\nAlready written:\n")
	if len(prior) == 0 {
		b.WriteString("None")
		return b.String()
	}
	if maxPrior > 0 && len(prior) > maxPrior {
		prior = prior[len(prior)-maxPrior:]
	}
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildReviewMessage(q content.Raw) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "(%c) %s\n", 'A'+i, opt)
	}
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
		fmt.Fprintf(&b, "Intended answer: (%c)\n", 'A'+q.CorrectIndex)
	}
	fmt.Fprintf(&b, "Category: %s\n", q.Category)
	fmt.Fprintf(&b, "Difficulty: %s\n", q.Difficulty)
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Explanation: %s\n", q.Explanation)
	}
	return strings.TrimRight(b.String(), "\n")
}
