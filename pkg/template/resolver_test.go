package template

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	lookup := MapLookup{
		"name":        "Alex",
		"week recap":  "Recap text.",
		"empty value": "",
	}

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr string
	}{
		{
			name: "no placeholders",
			text: "Plain prompt text.",
			want: "Plain prompt text.",
		},
		{
			name: "single substitution",
			text: "The user's name is {name}.",
			want: "The user's name is Alex.",
		},
		{
			name: "multiple substitutions",
			text: "{name}: {week recap}",
			want: "Alex: Recap text.",
		},
		{
			name: "empty value substitutes to nothing",
			text: "a{empty value}b",
			want: "ab",
		},
		{
			name: "whitespace preserved byte for byte",
			text: "line one\n\n  indented {name}\t tail ",
			want: "line one\n\n  indented Alex\t tail ",
		},
		{
			name: "escaped braces emit literals",
			text: "format {{json}} here",
			want: "format {json} here",
		},
		{
			name: "unterminated brace passes through",
			text: "open { and on",
			want: "open { and on",
		},
		{
			name: "empty braces pass through",
			text: "odd {} token",
			want: "odd {} token",
		},
		{
			name: "lone closing brace passes through",
			text: "close } here",
			want: "close } here",
		},
		{
			name:    "missing placeholder fails",
			text:    "hello {nobody}",
			wantErr: "nobody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.text, lookup)

			if tt.wantErr != "" {
				var missing *MissingPlaceholderError
				if !errors.As(err, &missing) {
					t.Fatalf("err = %v, want MissingPlaceholderError", err)
				}
				if missing.Name != tt.wantErr {
					t.Errorf("missing placeholder = %q, want %q", missing.Name, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMultiLookupOrder(t *testing.T) {
	first := MapLookup{"key": "first"}
	second := MapLookup{"key": "second", "other": "fallback"}

	lookup := Multi{first, second}

	if v, _ := lookup.Resolve("key"); v != "first" {
		t.Errorf("Resolve(key) = %q, want first lookup to win", v)
	}
	if v, _ := lookup.Resolve("other"); v != "fallback" {
		t.Errorf("Resolve(other) = %q, want fallback", v)
	}
	if _, ok := lookup.Resolve("absent"); ok {
		t.Error("Resolve(absent) should miss")
	}
}

func TestAnswerLookup(t *testing.T) {
	answers := map[int]string{
		4: "a technician role",
		7: "transport and scheduling",
	}
	lookup := AnswerLookup{
		Answer: func(q int) (string, bool) {
			v, ok := answers[q]
			return v, ok
		},
	}

	tests := []struct {
		name   string
		key    string
		want   string
		wantOk bool
	}{
		{name: "plain reference", key: "Answer to question 4", want: "a technician role", wantOk: true},
		{name: "annotated reference", key: "Answer to question 4 (goal selected)", want: "a technician role", wantOk: true},
		{name: "plural phrasing", key: "Answers to questions 7 (expected barriers)", want: "transport and scheduling", wantOk: true},
		{name: "from phrasing", key: "answer from question 7", want: "transport and scheduling", wantOk: true},
		{name: "case insensitive", key: "ANSWER TO QUESTION 4", want: "a technician role", wantOk: true},
		{name: "unanswered question", key: "Answer to question 9", wantOk: false},
		{name: "not an answer reference", key: "week recap", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lookup.Resolve(tt.key)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
