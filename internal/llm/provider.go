// Package llm talks to hosted language models. Every call the app makes is
// a single-turn prompt: either "write a problem" or "write feedback".
package llm

import "context"

// Purpose labels what a completion is for. It is stored with every
// recorded request so usage can be broken down per call site.
type Purpose string

const (
	PurposeProblem  Purpose = "problem-gen"
	PurposeFeedback Purpose = "feedback"
)

// Provider completes a single prompt.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// Model is the model identifier requests are sent to.
	Model() string
}

// Prompt is one single-turn request.
type Prompt struct {
	Purpose Purpose

	// System is optional; the built-in prompts put everything in User.
	System string
	User   string

	// JSON asks the provider for a bare JSON object where it has a native
	// switch for it. Anthropic has none, so replies may still arrive
	// wrapped in code fences.
	JSON bool

	MaxTokens   int
	Temperature float64
}

// Completion is the model's reply.
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// Usage is the token count for one request.
type Usage struct {
	Input  int
	Output int
}

// Total returns Input + Output.
func (u Usage) Total() int { return u.Input + u.Output }
