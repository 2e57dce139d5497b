package config

import "time"

// Default values for configuration options.
const (
	DefaultCommandTimeout = 5 * time.Second
	DefaultSampleWindow   = time.Second
	DefaultFreeFlag       = "megabytes"
	DefaultProcessLimit   = 10
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		CommandTimeout: DefaultCommandTimeout,
		SampleWindow:   DefaultSampleWindow,
		FreeFlag:       DefaultFreeFlag,
		ProcessLimit:   DefaultProcessLimit,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
