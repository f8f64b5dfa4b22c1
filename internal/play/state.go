package play

// State is the phase of the practice screen.
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateProblemShown
	StateSubmitting
	StateFeedbackShown
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateProblemShown:
		return "problem"
	case StateSubmitting:
		return "submitting"
	case StateFeedbackShown:
		return "feedback"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Loading reports whether a request is in flight. All controls are
// disabled while loading.
func (s State) Loading() bool {
	return s == StateGenerating || s == StateSubmitting
}

// CanGenerate reports whether a new problem may be requested.
func (s State) CanGenerate() bool {
	return !s.Loading()
}
