package sysinfo

import (
	"time"

	"github.com/opd-ai/go-sysinfo/internal/platform"
)

// DefaultCommandTimeout bounds each utility invocation unless overridden.
const DefaultCommandTimeout = platform.DefaultCommandTimeout

// DefaultSampleWindow is the pause between the two CPU usage samples.
const DefaultSampleWindow = platform.DefaultSampleWindow

// DefaultProcessLimit is the number of processes listed when no limit is
// given.
const DefaultProcessLimit = platform.DefaultProcessLimit

// CommandRunner runs a platform utility and returns its standard output.
type CommandRunner = platform.CommandRunner

// NativeReader reads OS counters that need no utility.
type NativeReader = platform.NativeReader

// Options configures a Client.
type Options struct {
	// Logger receives command traces and advisories.
	// If nil, no logging is performed.
	Logger Logger

	// CommandTimeout bounds each utility invocation.
	// Zero means DefaultCommandTimeout; a negative value disables it.
	CommandTimeout time.Duration

	// SampleWindow is the pause between CPU samples.
	// Zero means DefaultSampleWindow.
	SampleWindow time.Duration

	// ProcessLimit is used when Processes is called with limit <= 0.
	// Zero means DefaultProcessLimit.
	ProcessLimit int

	// GOOS overrides the detected operating system, in runtime.GOOS form.
	GOOS string

	// Runner replaces the utility runner. Mainly for tests.
	Runner CommandRunner

	// Native replaces the gopsutil-backed reader. Mainly for tests.
	Native NativeReader

	// Metrics collects invocation counters. If nil, a private instance is
	// used.
	Metrics *Metrics

	// OnAdvisory is called for every advisory, after it is logged.
	OnAdvisory AdvisoryHandler

	// Breaker enables per-utility breakers. If nil, every call spawns its
	// utility.
	Breaker *BreakerConfig
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		CommandTimeout: DefaultCommandTimeout,
		SampleWindow:   DefaultSampleWindow,
		ProcessLimit:   DefaultProcessLimit,
	}
}

// withDefaults fills zero values.
func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = NopLogger()
	}
	switch {
	case o.CommandTimeout == 0:
		o.CommandTimeout = DefaultCommandTimeout
	case o.CommandTimeout < 0:
		o.CommandTimeout = 0
	}
	if o.SampleWindow <= 0 {
		o.SampleWindow = DefaultSampleWindow
	}
	if o.ProcessLimit <= 0 {
		o.ProcessLimit = DefaultProcessLimit
	}
	if o.Runner == nil {
		o.Runner = platform.NewExecRunner(o.CommandTimeout)
	}
	if o.Native == nil {
		o.Native = platform.NewNativeReader()
	}
	if o.Metrics == nil {
		o.Metrics = NewMetrics()
	}
	return o
}
