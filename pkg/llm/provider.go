package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// CompletionProvider defines the contract for any completion backend. The
// orchestration core supplies fully-resolved prompt text and expects raw text
// back; no prompt engineering happens below this boundary.
type CompletionProvider interface {
	// Complete sends a system prompt plus one user message and returns the
	// raw completion text.
	Complete(ctx context.Context, systemPrompt, userMessage string, options ...Option) (string, error)

	// Chat sends a full chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}
