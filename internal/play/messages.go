package play

import "github.com/abhisek/mathpractice/internal/store"

// problemReadyMsg carries the result of a generate request.
type problemReadyMsg struct {
	Session *store.Session
	Err     error
}

// feedbackReadyMsg carries the result of a submit request.
type feedbackReadyMsg struct {
	Submission *store.Submission
	Err        error
}
