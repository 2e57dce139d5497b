package sysinfo

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordCommand(10*time.Millisecond, false, false)
	m.RecordCommand(30*time.Millisecond, true, true)
	m.IncrementParseFailures()
	m.IncrementAdvisories()
	m.IncrementCPUSamples()

	snap := m.Snapshot()
	assert.Equal(t, MetricsSnapshot{
		Commands:          2,
		CommandFailures:   1,
		Timeouts:          1,
		ParseFailures:     1,
		Advisories:        1,
		CPUSamples:        1,
		CommandLatencyAvg: 20 * time.Millisecond,
	}, snap)

	m.Reset()
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordCommand(time.Millisecond, false, false)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.Snapshot().Commands)
}

func TestMetricsRegisterExpvarTwice(t *testing.T) {
	m := NewMetrics()
	m.RegisterExpvar()
	assert.NotPanics(t, m.RegisterExpvar)
}
