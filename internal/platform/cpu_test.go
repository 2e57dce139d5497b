package platform

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// sequenceReader returns the queued samples in order.
type sequenceReader struct {
	samples []CPUTimes
	err     error
	calls   int
}

func (r *sequenceReader) CPUTimes(context.Context) (CPUTimes, error) {
	if r.err != nil {
		return CPUTimes{}, r.err
	}
	s := r.samples[r.calls%len(r.samples)]
	r.calls++
	return s, nil
}

func TestSumCPUTimes(t *testing.T) {
	cores := []cpu.TimesStat{
		{CPU: "cpu0", User: 1.5, System: 0.5, Idle: 8, Iowait: 3},
		{CPU: "cpu1", User: 1, Nice: 0.25, Irq: 0.25, Idle: 9},
	}

	got := SumCPUTimes(cores)
	if got.Idle != 17000 {
		t.Errorf("Idle = %d, want 17000", got.Idle)
	}
	// iowait is not part of the total
	if got.Total != 20500 {
		t.Errorf("Total = %d, want 20500", got.Total)
	}
	if got.Total < got.Idle {
		t.Error("Total must not be below Idle")
	}

	if empty := SumCPUTimes(nil); empty != (CPUTimes{}) {
		t.Errorf("empty input = %+v", empty)
	}
}

func TestIdleFraction(t *testing.T) {
	frac, err := IdleFraction(CPUTimes{Idle: 100, Total: 1000}, CPUTimes{Idle: 200, Total: 2000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(frac-0.1) > 1e-9 {
		t.Errorf("IdleFraction = %v, want 0.1", frac)
	}

	same := CPUTimes{Idle: 500, Total: 900}
	if _, err := IdleFraction(same, same); !errors.Is(err, ErrUndefinedResult) {
		t.Errorf("zero delta: expected ErrUndefinedResult, got %v", err)
	}
	if _, err := IdleFraction(CPUTimes{Idle: 10, Total: 100}, CPUTimes{Idle: 5, Total: 200}); !errors.Is(err, ErrUndefinedResult) {
		t.Errorf("idle went backwards: expected ErrUndefinedResult, got %v", err)
	}
}

func TestSampleCPUUsage(t *testing.T) {
	reader := &sequenceReader{samples: []CPUTimes{
		{Idle: 100, Total: 1000},
		{Idle: 200, Total: 2000},
	}}

	frac, err := SampleCPUUsage(context.Background(), reader, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(frac-0.1) > 1e-9 {
		t.Errorf("usage = %v, want 0.1", frac)
	}
	if reader.calls != 2 {
		t.Errorf("expected 2 samples, got %d", reader.calls)
	}
}

func TestSampleCPUUsage_Cancelled(t *testing.T) {
	reader := &sequenceReader{samples: []CPUTimes{{Idle: 1, Total: 2}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := SampleCPUUsage(ctx, reader, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancellation did not interrupt the wait")
	}
	if reader.calls != 1 {
		t.Errorf("second sample should not be taken, calls = %d", reader.calls)
	}
}

func TestSampleCPUUsage_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := SampleCPUUsage(context.Background(), &sequenceReader{err: boom}, time.Millisecond)
	if !errors.Is(err, boom) {
		t.Errorf("expected reader error, got %v", err)
	}
}
