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

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Usage reports token consumption as returned by the provider.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completion is a finished model response.
type Completion struct {
	Content string
	Model   string
	Usage   Usage
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Complete sends a chat history to the model and returns the full response
	Complete(ctx context.Context, history []Message, options ...Option) (*Completion, error)

	// CompleteStream sends a chat history and invokes onDelta for every content
	// fragment as it arrives. The returned Completion holds the assembled
	// content. A non-nil error from onDelta aborts the stream.
	CompleteStream(ctx context.Context, history []Message, onDelta func(delta string) error, options ...Option) (*Completion, error)
}
