package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrorKind classifies provider failures for retry decisions.
type ErrorKind int

const (
	// KindUnavailable covers network failures and 5xx responses.
	KindUnavailable ErrorKind = iota
	// KindRateLimited is a 429.
	KindRateLimited
	// KindRejected is a 4xx other than 429: bad key, unknown model.
	KindRejected
	// KindEmpty means the provider answered with no text.
	KindEmpty
	// KindTruncated means the reply hit the token limit.
	KindTruncated
)

var kindNames = [...]string{
	KindUnavailable: "unavailable",
	KindRateLimited: "rate_limited",
	KindRejected:    "rejected",
	KindEmpty:       "empty",
	KindTruncated:   "truncated",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Error is returned by every Provider in this package.
type Error struct {
	Kind     ErrorKind
	Provider string
	// RetryAfter is the server's hint on rate limits, zero if none.
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of an *Error in err's chain. ok is false for
// errors from outside this package, such as context cancellation.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// errorFromStatus maps an HTTP status from a provider SDK error.
func errorFromStatus(provider string, status int, header http.Header, err error) *Error {
	e := &Error{Provider: provider, Kind: KindUnavailable, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = parseRetryAfter(header)
	case status >= 400 && status < 500:
		e.Kind = KindRejected
	}
	return e
}

func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
