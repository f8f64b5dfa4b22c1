package problemgen

import "fmt"

// Validator checks a parsed problem before it is accepted.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural".
	Name() string

	// Validate returns nil if the problem passes, or a ValidationError.
	Validate(p *GeneratedProblem) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
