package platform

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// DefaultSampleWindow is the pause between the two CPU samples.
const DefaultSampleWindow = time.Second

// CPUTimesReader supplies accumulated CPU times. NativeReader satisfies it.
type CPUTimesReader interface {
	CPUTimes(ctx context.Context) (CPUTimes, error)
}

// millis converts gopsutil's fractional seconds to whole milliseconds.
func millis(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(math.Round(seconds * 1000))
}

// SumCPUTimes accumulates per-core times into a single CPUTimes.
// Total covers user, nice, system, irq and idle.
func SumCPUTimes(cores []cpu.TimesStat) CPUTimes {
	var t CPUTimes
	for _, c := range cores {
		idle := millis(c.Idle)
		t.Idle += idle
		t.Total += millis(c.User) + millis(c.Nice) + millis(c.System) + millis(c.Irq) + idle
	}
	return t
}

// IdleFraction returns idleΔ/totalΔ between two samples, in [0, 1].
// A zero or negative total delta has no defined value.
func IdleFraction(t0, t1 CPUTimes) (float64, error) {
	if t1.Total <= t0.Total || t1.Idle < t0.Idle {
		return 0, fmt.Errorf("cpu ticks %d -> %d: %w", t0.Total, t1.Total, ErrUndefinedResult)
	}

	idle := float64(t1.Idle - t0.Idle)
	total := float64(t1.Total - t0.Total)
	return math.Min(idle/total, 1), nil
}

// SampleCPUUsage takes two samples window apart and returns the idle
// fraction between them. The wait ends early with ctx.Err() when ctx is
// cancelled. Each call owns its samples, so concurrent calls are safe as
// long as the reader is.
func SampleCPUUsage(ctx context.Context, reader CPUTimesReader, window time.Duration) (float64, error) {
	if window <= 0 {
		window = DefaultSampleWindow
	}

	t0, err := reader.CPUTimes(ctx)
	if err != nil {
		return 0, fmt.Errorf("first cpu sample: %w", err)
	}

	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-timer.C:
	}

	t1, err := reader.CPUTimes(ctx)
	if err != nil {
		return 0, fmt.Errorf("second cpu sample: %w", err)
	}
	return IdleFraction(t0, t1)
}
