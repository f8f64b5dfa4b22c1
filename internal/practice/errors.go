package practice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a malformed client request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound reports a reference to a session that does not exist.
	ErrNotFound = errors.New("problem session not found")
)

// GenerationError wraps a model call that failed or returned unusable
// content.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ErrorKind classifies service errors for transport mapping.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindNotFound
	KindGeneration
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindGeneration:
		return "generation_failure"
	case KindStore:
		return "store_failure"
	default:
		return "unknown"
	}
}

// Kind returns the ErrorKind of err.
func Kind(err error) ErrorKind {
	var genErr *GenerationError
	var storeErr *StoreError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.As(err, &genErr):
		return KindGeneration
	case errors.As(err, &storeErr):
		return KindStore
	default:
		return KindUnknown
	}
}
