package template

import (
	"regexp"
	"strconv"
	"strings"
)

// Authored prompts reference prior answers in free-form phrasing like
// "Answer to question 4 (goal selected)" or "Answers to questions 7
// (expected barriers)". Only the question number is significant.
var answerRefPattern = regexp.MustCompile(`(?i)^answers?\s+(?:to|from)\s+questions?\s+(\d+)`)

// AnswerLookup resolves "answer to question N" style placeholder names
// against the recorded answers of the caller's session.
type AnswerLookup struct {
	// Answer returns the stored answer for a question number, joined across
	// iterations by the caller's policy.
	Answer func(question int) (string, bool)
}

func (l AnswerLookup) Resolve(name string) (string, bool) {
	m := answerRefPattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	return l.Answer(n)
}
