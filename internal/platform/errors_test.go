package platform

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseError(t *testing.T) {
	err := parseError("free", "garbage", "expected %d columns", 7)

	if !errors.Is(err, ErrParseFailure) {
		t.Error("ParseError should match ErrParseFailure")
	}
	if err.Raw != "garbage" {
		t.Errorf("Raw = %q", err.Raw)
	}
	if got := err.Error(); got != "parse free output: expected 7 columns" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := fmt.Errorf("reading memory: %w", err)
	if pe := AsParseError(wrapped); pe == nil || pe.Command != "free" {
		t.Errorf("AsParseError(wrapped) = %v", pe)
	}
	if AsParseError(errors.New("other")) != nil {
		t.Error("AsParseError should return nil for unrelated errors")
	}
}

func TestCommandError(t *testing.T) {
	err := &CommandError{
		Command: "wmic baseboard get Product",
		Stderr:  "Access denied\n",
		Err:     fmt.Errorf("%w: exit status 1", ErrCommandUnavailable),
	}

	if !errors.Is(err, ErrCommandUnavailable) {
		t.Error("CommandError should unwrap to its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "wmic baseboard") || !strings.Contains(msg, "stderr: Access denied") {
		t.Errorf("Error() = %q", msg)
	}

	quiet := &CommandError{Command: "df", Err: ErrCommandTimeout}
	if strings.Contains(quiet.Error(), "stderr") {
		t.Errorf("empty stderr should be omitted: %q", quiet.Error())
	}
}
