package repository

import (
	"errors"
	"fmt"
)

// UpstreamFetchError wraps a failure reported by the document store.
type UpstreamFetchError struct {
	Op  string
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

func upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamFetchError{Op: op, Err: err}
}

// IsUpstream reports whether err came from the document store.
func IsUpstream(err error) bool {
	var u *UpstreamFetchError
	return errors.As(err, &u)
}
