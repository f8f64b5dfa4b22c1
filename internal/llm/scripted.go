package llm

import (
	"context"
	"errors"
	"sync"
)

// Step is one scripted reply: either Text or Err.
type Step struct {
	Text  string
	Usage Usage
	Err   error
}

// Reply is a successful Step.
func Reply(text string) Step { return Step{Text: text} }

// Fail is a failing Step.
func Fail(err error) Step { return Step{Err: err} }

// errScriptExhausted is wrapped when Scripted runs out of steps.
var errScriptExhausted = errors.New("no scripted reply left")

// Scripted replays Steps in order and records every Prompt. It is meant
// for tests.
type Scripted struct {
	mu      sync.Mutex
	steps   []Step
	prompts []Prompt
}

// NewScripted creates a Scripted provider that will answer with steps.
func NewScripted(steps ...Step) *Scripted {
	return &Scripted{steps: steps}
}

func (s *Scripted) Model() string { return "scripted" }

func (s *Scripted) Complete(_ context.Context, p Prompt) (*Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, p)
	if len(s.steps) == 0 {
		return nil, &Error{Provider: "scripted", Kind: KindUnavailable, Err: errScriptExhausted}
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	if step.Err != nil {
		return nil, step.Err
	}
	return &Completion{Text: step.Text, Model: s.Model(), Usage: step.Usage}, nil
}

// Push queues more steps.
func (s *Scripted) Push(steps ...Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, steps...)
}

// Prompts returns a copy of every prompt received so far.
func (s *Scripted) Prompts() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prompt(nil), s.prompts...)
}
