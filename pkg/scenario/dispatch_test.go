package scenario

import (
	"context"
	"errors"
	"testing"

	"driven-coach-be/pkg/llm"
	"driven-coach-be/pkg/template"
)

// fakeProvider returns queued completions in order.
type fakeProvider struct {
	replies []string
	err     error
	calls   []fakeCall
}

type fakeCall struct {
	systemPrompt string
	userMessage  string
	options      llm.Options
}

func (f *fakeProvider) Complete(ctx context.Context, systemPrompt, userMessage string, options ...llm.Option) (string, error) {
	var opts llm.Options
	for _, o := range options {
		o(&opts)
	}
	f.calls = append(f.calls, fakeCall{systemPrompt: systemPrompt, userMessage: userMessage, options: opts})
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

var labels = []string{"SCENARIO_1", "SCENARIO_2", "SCENARIO_3"}

func TestClassifyMatchesLabel(t *testing.T) {
	provider := &fakeProvider{replies: []string{"SCENARIO_2"}}
	d := NewDispatcher(provider)

	got, err := d.Classify(context.Background(), "Classify {name}'s answer.", template.MapLookup{"name": "Alex"}, "I did not do it", labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "SCENARIO_2" {
		t.Errorf("Classify() = %q, want SCENARIO_2", got)
	}

	if len(provider.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(provider.calls))
	}
	call := provider.calls[0]
	if call.systemPrompt != ClassifierPreamble {
		t.Errorf("system prompt = %q, want classifier preamble", call.systemPrompt)
	}
	if call.userMessage != "Classify Alex's answer.\n\nUser's response: I did not do it" {
		t.Errorf("user message = %q", call.userMessage)
	}
	if call.options.Temperature != ClassifierTemperature {
		t.Errorf("temperature = %v, want %v", call.options.Temperature, ClassifierTemperature)
	}
}

func TestClassifyTrimsWhitespace(t *testing.T) {
	provider := &fakeProvider{replies: []string{"  SCENARIO_1\n"}}
	d := NewDispatcher(provider)

	got, err := d.Classify(context.Background(), "classify", template.MapLookup{}, "answer", labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "SCENARIO_1" {
		t.Errorf("Classify() = %q, want SCENARIO_1", got)
	}
}

func TestClassifyRetriesOnceThenMatches(t *testing.T) {
	provider := &fakeProvider{replies: []string{"Scenario one, clearly", "SCENARIO_1"}}
	d := NewDispatcher(provider)

	got, err := d.Classify(context.Background(), "classify", template.MapLookup{}, "answer", labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "SCENARIO_1" {
		t.Errorf("Classify() = %q, want SCENARIO_1", got)
	}
	if len(provider.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(provider.calls))
	}
}

func TestClassifyMismatchAfterRetry(t *testing.T) {
	provider := &fakeProvider{replies: []string{"SCENARIO_9"}}
	d := NewDispatcher(provider)

	_, err := d.Classify(context.Background(), "classify", template.MapLookup{}, "answer", labels)

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want MismatchError", err)
	}
	if mismatch.Got != "SCENARIO_9" {
		t.Errorf("mismatch.Got = %q, want SCENARIO_9", mismatch.Got)
	}
	if len(provider.calls) != 2 {
		t.Errorf("calls = %d, want 2 attempts before giving up", len(provider.calls))
	}
}

func TestClassifyCaseSensitive(t *testing.T) {
	provider := &fakeProvider{replies: []string{"scenario_1"}}
	d := NewDispatcher(provider)

	_, err := d.Classify(context.Background(), "classify", template.MapLookup{}, "answer", labels)

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want MismatchError for lowercase output", err)
	}
}

func TestClassifyNoLabels(t *testing.T) {
	d := NewDispatcher(&fakeProvider{replies: []string{"SCENARIO_1"}})

	if _, err := d.Classify(context.Background(), "classify", template.MapLookup{}, "answer", nil); err == nil {
		t.Error("expected error for empty label set")
	}
}

func TestClassifyProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	d := NewDispatcher(provider)

	if _, err := d.Classify(context.Background(), "classify", template.MapLookup{}, "answer", labels); err == nil {
		t.Error("expected provider error to propagate")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantComplete bool
		wantMissing  string
	}{
		{
			name:         "complete",
			text:         "COMPLETE: Yes\nMISSING: None",
			wantComplete: true,
			wantMissing:  "None",
		},
		{
			name:         "incomplete with missing items",
			text:         "COMPLETE: No\nMISSING: a reason for the goal",
			wantComplete: false,
			wantMissing:  "a reason for the goal",
		},
		{
			name:         "no space after colon",
			text:         "COMPLETE:Yes\nMISSING:None",
			wantComplete: true,
			wantMissing:  "None",
		},
		{
			name:         "mixed case",
			text:         "Complete: yes\nMissing: None",
			wantComplete: true,
			wantMissing:  "Unknown",
		},
		{
			name:         "garbage counts as incomplete",
			text:         "I think the answer looks good!",
			wantComplete: false,
			wantMissing:  "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseValidation(tt.text)
			if got.Complete != tt.wantComplete {
				t.Errorf("Complete = %v, want %v", got.Complete, tt.wantComplete)
			}
			if got.Missing != tt.wantMissing {
				t.Errorf("Missing = %q, want %q", got.Missing, tt.wantMissing)
			}
		})
	}
}
