package sysinfo

import (
	"expvar"
	"sync/atomic"
	"time"
)

// Metrics counts utility invocations and their outcomes. It is safe for
// concurrent use; a Client shares one instance across all calls.
//
//	m := sysinfo.NewMetrics()
//	m.RegisterExpvar() // exposes sysinfo_* on /debug/vars
type Metrics struct {
	commands        atomic.Int64
	commandFailures atomic.Int64
	timeouts        atomic.Int64
	parseFailures   atomic.Int64
	advisories      atomic.Int64
	cpuSamples      atomic.Int64
	rejections      atomic.Int64

	commandLatencyNs    atomic.Int64
	commandLatencyCount atomic.Int64

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the counters with expvar. Safe to call multiple
// times; expvar names are global, so only one Metrics per process should
// register.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	expvar.Publish("sysinfo_commands_total", expvar.Func(func() any { return m.commands.Load() }))
	expvar.Publish("sysinfo_command_failures_total", expvar.Func(func() any { return m.commandFailures.Load() }))
	expvar.Publish("sysinfo_command_timeouts_total", expvar.Func(func() any { return m.timeouts.Load() }))
	expvar.Publish("sysinfo_parse_failures_total", expvar.Func(func() any { return m.parseFailures.Load() }))
	expvar.Publish("sysinfo_advisories_total", expvar.Func(func() any { return m.advisories.Load() }))
	expvar.Publish("sysinfo_cpu_samples_total", expvar.Func(func() any { return m.cpuSamples.Load() }))
	expvar.Publish("sysinfo_breaker_rejections_total", expvar.Func(func() any { return m.rejections.Load() }))
	expvar.Publish("sysinfo_command_latency_avg_ms", expvar.Func(func() any {
		return float64(m.Snapshot().CommandLatencyAvg) / float64(time.Millisecond)
	}))
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Commands        int64
	CommandFailures int64
	Timeouts        int64
	ParseFailures   int64
	Advisories      int64
	CPUSamples      int64
	// Rejections counts invocations skipped by an open breaker.
	Rejections int64

	CommandLatencyAvg time.Duration
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Commands:          m.commands.Load(),
		CommandFailures:   m.commandFailures.Load(),
		Timeouts:          m.timeouts.Load(),
		ParseFailures:     m.parseFailures.Load(),
		Advisories:        m.advisories.Load(),
		CPUSamples:        m.cpuSamples.Load(),
		Rejections:        m.rejections.Load(),
		CommandLatencyAvg: safeDivide(m.commandLatencyNs.Load(), m.commandLatencyCount.Load()),
	}
}

// RecordCommand records one utility invocation and its duration.
func (m *Metrics) RecordCommand(d time.Duration, failed, timedOut bool) {
	m.commands.Add(1)
	m.commandLatencyNs.Add(int64(d))
	m.commandLatencyCount.Add(1)
	if failed {
		m.commandFailures.Add(1)
	}
	if timedOut {
		m.timeouts.Add(1)
	}
}

// IncrementParseFailures records output that did not match its layout.
func (m *Metrics) IncrementParseFailures() {
	m.parseFailures.Add(1)
}

// IncrementAdvisories records a recovered problem.
func (m *Metrics) IncrementAdvisories() {
	m.advisories.Add(1)
}

// IncrementCPUSamples records a completed CPU usage measurement.
func (m *Metrics) IncrementCPUSamples() {
	m.cpuSamples.Add(1)
}

// IncrementRejections records an invocation refused by an open breaker.
func (m *Metrics) IncrementRejections() {
	m.rejections.Add(1)
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.commands.Store(0)
	m.commandFailures.Store(0)
	m.timeouts.Store(0)
	m.parseFailures.Store(0)
	m.advisories.Store(0)
	m.cpuSamples.Store(0)
	m.rejections.Store(0)
	m.commandLatencyNs.Store(0)
	m.commandLatencyCount.Store(0)
}

func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}
