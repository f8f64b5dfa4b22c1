package problemgen

import "context"

// Generator produces math word problems.
type Generator interface {
	// Generate produces a single problem for a freshly picked topic.
	// All configured validators are run before returning.
	Generate(ctx context.Context) (*GeneratedProblem, error)
}

// FeedbackWriter produces tutor feedback for an answer attempt.
type FeedbackWriter interface {
	// Feedback returns trimmed, non-empty feedback text.
	Feedback(ctx context.Context, in FeedbackInput) (string, error)
}
