// Package config loads sysinfo settings from Lua or YAML files.
package config

import "time"

// Config holds the settings shared by the library client and the CLI.
type Config struct {
	// CommandTimeout bounds each utility invocation. Zero disables it.
	CommandTimeout time.Duration
	// SampleWindow is the pause between the two CPU samples.
	SampleWindow time.Duration
	// FreeFlag is the default unit for the `free` reader, e.g. "megabytes".
	FreeFlag string
	// ProcessLimit is the default number of processes listed.
	ProcessLimit int
	// NoColor disables styled terminal output.
	NoColor bool
	Log     LogConfig
}

// LogConfig selects the logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is text or json.
	Format string
}
