package query

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every ValidationError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError reports a malformed primitive handed to a builder. It
// never reflects business rules such as whether a user exists.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
