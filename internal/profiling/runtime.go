package profiling

import (
	"runtime"
	"time"
)

// RuntimeStats is a point-in-time view of the Go runtime, logged at debug
// level when a CLI run ends.
type RuntimeStats struct {
	Timestamp   time.Time
	HeapAlloc   uint64
	HeapSys     uint64
	HeapObjects uint64
	StackInuse  uint64
	Goroutines  int
	NumGC       uint32
}

// ReadRuntimeStats samples runtime.MemStats.
func ReadRuntimeStats() RuntimeStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return RuntimeStats{
		Timestamp:   time.Now(),
		HeapAlloc:   ms.HeapAlloc,
		HeapSys:     ms.HeapSys,
		HeapObjects: ms.HeapObjects,
		StackInuse:  ms.StackInuse,
		Goroutines:  runtime.NumGoroutine(),
		NumGC:       ms.NumGC,
	}
}

// LogArgs flattens the stats into slog-style key/value pairs.
func (s RuntimeStats) LogArgs() []any {
	return []any{
		"heap_alloc", s.HeapAlloc,
		"heap_sys", s.HeapSys,
		"heap_objects", s.HeapObjects,
		"stack_inuse", s.StackInuse,
		"goroutines", s.Goroutines,
		"gc_cycles", s.NumGC,
	}
}
