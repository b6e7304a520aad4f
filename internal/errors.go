package leetcli

import (
	"errors"
	"fmt"
)

// Sentinel errors for the CLI domain.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrProblemNotFound  = errors.New("problem not found")
)

// TransportError wraps a network-level failure talking to the platform.
// It is fatal when starting a job; the poller treats it as transient.
type TransportError struct {
	Op  string // operation that failed, e.g. "graphql", "submit"
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
