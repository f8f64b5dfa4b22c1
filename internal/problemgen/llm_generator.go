package problemgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/mathpractice/internal/llm"
)

// ErrEmptyFeedback is returned when the model replies with blank feedback.
var ErrEmptyFeedback = errors.New("empty feedback from model")

// LLMGenerator implements Generator and FeedbackWriter using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.Picker == nil {
		cfg.Picker = RandomTopic
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate picks a topic, asks the model for a problem, and parses and
// validates the reply.
func (g *LLMGenerator) Generate(ctx context.Context) (*GeneratedProblem, error) {
	topic := g.config.Picker(Topics)

	c, err := g.provider.Complete(ctx, llm.Prompt{
		Purpose:     llm.PurposeProblem,
		User:        BuildProblemPrompt(topic),
		JSON:        true,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	p, err := ParseProblem(c.Text)
	if err != nil {
		return nil, err
	}
	p.Topic = topic

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(p); verr != nil {
			return nil, &MalformedResponseError{Raw: c.Text, Err: verr}
		}
	}

	return p, nil
}

// Feedback asks the model for encouraging feedback on an answer attempt.
func (g *LLMGenerator) Feedback(ctx context.Context, in FeedbackInput) (string, error) {
	c, err := g.provider.Complete(ctx, llm.Prompt{
		Purpose:     llm.PurposeFeedback,
		User:        BuildFeedbackPrompt(in),
		MaxTokens:   g.config.FeedbackMaxTokens,
		Temperature: g.config.FeedbackTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM feedback failed: %w", err)
	}

	text := strings.TrimSpace(c.Text)
	if text == "" {
		return "", ErrEmptyFeedback
	}
	return text, nil
}
