package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/opd-ai/go-sysinfo/internal/platform"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	Errors []ValidationError
	// Warnings contains non-fatal issues such as an unknown free flag, which
	// the reader replaces with megabytes at call time.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

var (
	logLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	logFormats = map[string]bool{"text": true, "json": true}
)

// Check validates every field and collects all problems.
func (c Config) Check() *ValidationResult {
	result := &ValidationResult{}

	switch {
	case c.CommandTimeout < 0:
		result.AddError("command_timeout", "must not be negative")
	case c.CommandTimeout == 0:
		result.AddWarning("command_timeout", "utilities run without a deadline")
	case c.CommandTimeout > 5*time.Minute:
		result.AddWarning("command_timeout", fmt.Sprintf("%v is unusually long", c.CommandTimeout))
	}

	switch {
	case c.SampleWindow <= 0:
		result.AddError("sample_window", "must be positive")
	case c.SampleWindow > time.Minute:
		result.AddWarning("sample_window", fmt.Sprintf("CPU usage calls will block for %v", c.SampleWindow))
	}

	if _, ok := platform.ParseFreeFlag(c.FreeFlag); !ok {
		result.AddWarning("free_flag", fmt.Sprintf("unknown unit %q, megabytes will be used", c.FreeFlag))
	}

	if c.ProcessLimit < 0 {
		result.AddError("process_limit", "must not be negative")
	}

	if !logLevels[strings.ToLower(c.Log.Level)] {
		result.AddError("log_level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	if !logFormats[strings.ToLower(c.Log.Format)] {
		result.AddError("log_format", fmt.Sprintf("unknown format %q (expected text or json)", c.Log.Format))
	}

	return result
}

// Validate returns an error describing every invalid field, or nil.
func (c Config) Validate() error {
	return c.Check().Error()
}
