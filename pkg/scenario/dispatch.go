// Package scenario turns a free-text answer into one of a question's declared
// scenario labels via a classification model call.
package scenario

import (
	"context"
	"fmt"
	"strings"

	"driven-coach-be/pkg/llm"
	"driven-coach-be/pkg/template"
)

// ClassifierPreamble is the fixed system prompt for classification calls. The
// resolved classifier template rides in the user message together with the
// answer text.
const ClassifierPreamble = "You are a scenario classifier. Respond with only the scenario identifier."

// ClassifierTemperature keeps classification output as deterministic as the
// model allows.
const ClassifierTemperature = 0.1

// MismatchError reports completion output that matches none of the declared
// scenario labels. The dispatcher never guesses a default scenario; the
// orchestrator owns the fallback policy.
type MismatchError struct {
	Got    string
	Labels []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("scenario: classifier output %q matches no declared label %v", e.Got, e.Labels)
}

// Dispatcher issues classification calls against a completion provider.
type Dispatcher struct {
	provider llm.CompletionProvider
}

func NewDispatcher(provider llm.CompletionProvider) *Dispatcher {
	return &Dispatcher{provider: provider}
}

// Classify resolves classifierTemplate against lookup, sends it with the
// answer text to the completion provider, and matches the returned text
// exactly (case-sensitive) against labels. A first mismatch is retried once
// with the identical prompt to absorb model non-determinism; a second
// mismatch returns MismatchError.
func (d *Dispatcher) Classify(ctx context.Context, classifierTemplate string, lookup template.Lookup, answerText string, labels []string) (string, error) {
	if len(labels) == 0 {
		return "", fmt.Errorf("scenario: question declares no scenario labels")
	}

	prompt, err := template.Resolve(classifierTemplate, lookup)
	if err != nil {
		return "", err
	}
	userMessage := fmt.Sprintf("%s\n\nUser's response: %s", prompt, answerText)

	var lastMismatch *MismatchError
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := d.provider.Complete(ctx, ClassifierPreamble, userMessage,
			llm.WithTemperature(ClassifierTemperature),
		)
		if err != nil {
			return "", fmt.Errorf("classification call: %w", err)
		}

		got := strings.TrimSpace(raw)
		for _, label := range labels {
			if got == label {
				return label, nil
			}
		}
		lastMismatch = &MismatchError{Got: got, Labels: labels}
	}

	return "", lastMismatch
}
