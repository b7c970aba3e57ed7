package shell

import (
	"errors"
	"fmt"
)

// ExitError carries the exit code the process should terminate with.
// A zero exit code still is an ExitError, so callers can tell a
// regular shutdown apart from a failure to run at all.
type ExitError struct {
	ExitCode int

	// Err is the failure that forced the exit, if any.
	Err error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shell exited with %d: %v", e.ExitCode, e.Err)
	}
	return fmt.Sprintf("shell exited with %d", e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(exitCode int) *ExitError {
	return &ExitError{ExitCode: exitCode}
}

// failure wraps err into an ExitError with exit code 1.
func failure(err error) *ExitError {
	return &ExitError{ExitCode: 1, Err: err}
}

func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// ExitCode returns the exit code carried by err, or 1 if err is
// not an ExitError.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}

	return 1
}
