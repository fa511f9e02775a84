package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	ExitFailure = 1 // Resolution failure
	ExitUsage   = 2 // Invalid flags, arguments or configuration
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(message string, err error) *ExitError {
	return &ExitError{Code: ExitUsage, Message: message, Err: err}
}

// usageArgs wraps a positional argument validator so its failures exit
// with ExitUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError("invalid arguments", err)
		}
		return nil
	}
}

// ExitCode extracts the exit code from an error. Errors that are not an
// ExitError map to ExitFailure.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
