package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/potato/internal/logger"
)

// ExitCoder is implemented by errors that carry their own process exit code.
type ExitCoder interface {
	ExitCode() int
}

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// WithExitCode wraps err so that Fatal exits with code instead of 1.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitError{err: err, code: code}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Code returns the exit code for err: 0 for nil, the wrapped code for an
// ExitCoder anywhere in the chain, and 1 otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if stderrors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

// Report writes the formatted error to w and logs it. It returns the exit code.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(w, "%s\n", Format(err))
	return Code(err)
}

// Fatal logs an error and exits the program with its exit code
func Fatal(err error) {
	if err != nil {
		os.Exit(Report(os.Stderr, err))
	}
}
