package envgate

import (
	"errors"
	"fmt"
)

// RuntimeError represents an operational fault that should lead to exit
// code 2: configuration errors, unreadable checks files, lock directory
// problems. Test failures are not runtime errors; they exit with 1.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap exposes the underlying fault to errors.Is and errors.As.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError marks an error as operational so main maps it to
// exit code 2 rather than a test failure.
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError reports whether err is or wraps a RuntimeError.
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}
