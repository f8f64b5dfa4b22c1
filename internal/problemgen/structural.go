package problemgen

import (
	"strings"
	"unicode/utf8"
)

// MaxProblemTextLen bounds the problem text in runes.
const MaxProblemTextLen = 2000

// StructuralValidator rejects blank or oversized problem text.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *GeneratedProblem) *ValidationError {
	if strings.TrimSpace(p.ProblemText) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem_text is blank",
		}
	}
	if utf8.RuneCountInString(p.ProblemText) > MaxProblemTextLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem_text exceeds 2000 characters",
		}
	}
	return nil
}
