package sysinfo

import (
	"fmt"

	"github.com/opd-ai/go-sysinfo/internal/platform"
)

// Error kinds returned by Client methods. Match them with errors.Is.
var (
	ErrPlatformMismatch   = platform.ErrPlatformMismatch
	ErrInvalidParameter   = platform.ErrInvalidParameter
	ErrParseFailure       = platform.ErrParseFailure
	ErrCommandUnavailable = platform.ErrCommandUnavailable
	ErrCommandTimeout     = platform.ErrCommandTimeout
	ErrUndefinedResult    = platform.ErrUndefinedResult
)

type (
	// ParseError carries the raw utility output that failed to parse.
	ParseError = platform.ParseError
	// CommandError wraps a failed utility invocation.
	CommandError = platform.CommandError
)

// AsParseError extracts a ParseError from err, or returns nil.
func AsParseError(err error) *ParseError {
	return platform.AsParseError(err)
}

// Advisory is a non-fatal problem the Client recovered from, such as an
// unknown unit flag replaced by megabytes.
type Advisory struct {
	Operation string
	Message   string
	// Err is ErrInvalidParameter wrapped with the offending value.
	Err error
}

// String returns a one-line description.
func (a Advisory) String() string {
	return fmt.Sprintf("%s: %s", a.Operation, a.Message)
}

// AdvisoryHandler receives advisories.
type AdvisoryHandler func(Advisory)
