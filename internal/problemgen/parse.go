package problemgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// ErrMalformedResponse matches every *MalformedResponseError via errors.Is.
var ErrMalformedResponse = errors.New("malformed model response")

// MalformedResponseError reports model output that is not a valid problem.
// Raw holds the unmodified text for diagnostics; it must not be shown to
// end users.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?[ \t]*```$")
	innerFence    = regexp.MustCompile("(?s)```[A-Za-z0-9_+-]*[ \t]*\r?\n(.*?)\r?\n?[ \t]*```")
)

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag, and trims whitespace. When the text has prose
// around a single fenced block, the block's content is returned.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = leadingFence.ReplaceAllString(s, "")
		s = trailingFence.ReplaceAllString(s, "")
		return strings.TrimSpace(s)
	}
	if m := innerFence.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// ParseProblem turns raw model text into a GeneratedProblem. It accepts a
// bare JSON object or one wrapped in a markdown code fence. Every failure
// is a *MalformedResponseError.
func ParseProblem(raw string) (*GeneratedProblem, error) {
	clean := stripCodeFences(raw)
	if clean == "" {
		return nil, &MalformedResponseError{Raw: raw, Err: errors.New("empty response")}
	}

	if err := validateProblemJSON(clean); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	var p GeneratedProblem
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}
	if math.IsNaN(p.FinalAnswer) || math.IsInf(p.FinalAnswer, 0) {
		return nil, &MalformedResponseError{Raw: raw, Err: errors.New("final_answer is not finite")}
	}

	return &p, nil
}
