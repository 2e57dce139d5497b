package platform

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrPlatformMismatch is returned when an operation is invoked on a
	// platform that does not support it.
	ErrPlatformMismatch = errors.New("operation not supported on this platform")
	// ErrInvalidParameter marks a malformed caller argument. The memory
	// reader reports it as an advisory and substitutes a default.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrParseFailure is returned when utility output does not match the
	// expected layout.
	ErrParseFailure = errors.New("unexpected command output")
	// ErrCommandUnavailable is returned when the utility is not installed
	// or not executable.
	ErrCommandUnavailable = errors.New("command unavailable")
	// ErrCommandTimeout is returned when a utility exceeds its deadline.
	ErrCommandTimeout = errors.New("command timed out")
	// ErrUndefinedResult is returned when a derived metric has no defined
	// value, e.g. a zero tick delta between two CPU samples.
	ErrUndefinedResult = errors.New("no data")
)

// ParseError carries the raw output that failed to parse.
type ParseError struct {
	Command string
	Reason  string
	Raw     string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s output: %s", e.Command, e.Reason)
}

// Unwrap returns ErrParseFailure.
func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

func parseError(command, raw, format string, args ...any) *ParseError {
	return &ParseError{
		Command: command,
		Reason:  fmt.Sprintf(format, args...),
		Raw:     raw,
	}
}

// CommandError wraps a failed utility invocation.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += " (stderr: " + stderr + ")"
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// AsParseError extracts a ParseError from err, or returns nil.
func AsParseError(err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}
