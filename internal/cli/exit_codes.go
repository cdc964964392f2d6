package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/commitlog/internal/errors"
)

// Exit codes for the commitlog CLI.
// Soft failures (tag sync, title lookup, exports) never change the exit code.
const (
	// ExitSuccess indicates the changelog was produced
	ExitSuccess = 0

	// ExitFailure indicates the commit history could not be read
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitInvalidConfig indicates the configuration failed to load or validate
	ExitInvalidConfig = 3
)

// exitError is a custom error type that carries an exit code. The message
// has already been printed when it is returned.
type exitError struct {
	code int
	err  error
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int, err error) error {
	return &exitError{code: code, err: err}
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitFailure
}

func isExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}

// exitCodeForCategory maps the category of an unreported CLIError to an
// exit code.
func exitCodeForCategory(category clierrors.ErrorCategory) int {
	switch category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitInvalidConfig
	default:
		return ExitFailure
	}
}
