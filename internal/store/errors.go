package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("not found")

// UnavailableError indicates the database could not complete an operation:
// it was unreachable, a constraint was violated, or a row failed to scan.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func unavailable(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}
