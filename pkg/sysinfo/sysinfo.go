package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/opd-ai/go-sysinfo/internal/platform"
)

// Version is the library version.
const Version = "0.3.0"

const bytesPerMB = 1024 * 1024

// Client answers system telemetry queries for one platform. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	category Category
	opts     Options
	dispatch handlers
	runner   *instrumentedRunner

	advisoryMu sync.RWMutex
	onAdvisory AdvisoryHandler
}

// New creates a Client. A nil opts uses DefaultOptions.
func New(opts *Options) *Client {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o = o.withDefaults()

	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	category := platform.ResolveOS(goos)

	runner := &instrumentedRunner{next: o.Runner, logger: o.Logger, metrics: o.Metrics}
	if o.Breaker != nil {
		runner.breakers = newBreakerSet(*o.Breaker)
	}

	c := &Client{
		category:   category,
		opts:       o,
		runner:     runner,
		dispatch:   newHandlers(category, runner, o.Native),
		onAdvisory: o.OnAdvisory,
	}
	o.Logger.Debug("sysinfo client ready", "platform", category.String(), "family", category.Family().String())
	return c
}

// SetAdvisoryHandler registers a callback for advisories, replacing any
// previous one. A nil handler removes it.
func (c *Client) SetAdvisoryHandler(handler AdvisoryHandler) {
	c.advisoryMu.Lock()
	defer c.advisoryMu.Unlock()
	c.onAdvisory = handler
}

func (c *Client) advise(a Advisory) {
	c.opts.Metrics.IncrementAdvisories()
	c.opts.Logger.Warn(a.Message, "operation", a.Operation, "error", a.Err)

	c.advisoryMu.RLock()
	handler := c.onAdvisory
	c.advisoryMu.RUnlock()
	if handler != nil {
		handler(a)
	}
}

// observe counts parse failures before returning err unchanged.
func (c *Client) observe(err error) error {
	if errors.Is(err, ErrParseFailure) {
		c.opts.Metrics.IncrementParseFailures()
		if pe := AsParseError(err); pe != nil {
			c.opts.Logger.Debug("unexpected utility output", "command", pe.Command, "reason", pe.Reason, "raw", pe.Raw)
		}
	}
	return err
}

func mismatch(capability Capability, category Category) error {
	return fmt.Errorf("%s on %s: %w", capability, category, ErrPlatformMismatch)
}

// Platform returns the resolved platform category.
func (c *Client) Platform() Category {
	return c.category
}

// Supports reports whether the platform can answer the operation.
func (c *Client) Supports(capability Capability) bool {
	return c.dispatch.supports(capability)
}

// BreakerState reports the breaker for a utility such as "free". It is
// always BreakerClosed when Options.Breaker is nil.
func (c *Client) BreakerState(utility string) BreakerState {
	if c.runner.breakers == nil {
		return BreakerClosed
	}
	return c.runner.breakers.state(utility)
}

// Metrics returns the invocation counters.
func (c *Client) Metrics() *Metrics {
	return c.opts.Metrics
}

// CPUCount returns the number of logical cores. It never fails.
func (c *Client) CPUCount() int {
	return c.opts.Native.CPUCount()
}

// TotalMemory returns total physical memory in bytes.
func (c *Client) TotalMemory(ctx context.Context) (uint64, error) {
	total, _, err := c.opts.Native.Memory(ctx)
	return total, err
}

// FreeMemory returns available memory in bytes.
func (c *Client) FreeMemory(ctx context.Context) (uint64, error) {
	_, available, err := c.opts.Native.Memory(ctx)
	return available, err
}

// TotalMemoryMB returns total memory in mebibytes (bytes / 1024²).
func (c *Client) TotalMemoryMB(ctx context.Context) (float64, error) {
	total, err := c.TotalMemory(ctx)
	return float64(total) / bytesPerMB, err
}

// FreeMemoryMB returns available memory in mebibytes (bytes / 1024²).
func (c *Client) FreeMemoryMB(ctx context.Context) (float64, error) {
	free, err := c.FreeMemory(ctx)
	return float64(free) / bytesPerMB, err
}

// CPUUsage samples CPU times twice, SampleWindow apart, and returns the
// IDLE fraction in [0, 1] over that window. Subtract from 1 for the busy
// fraction. A zero tick delta returns ErrUndefinedResult.
func (c *Client) CPUUsage(ctx context.Context) (float64, error) {
	frac, err := platform.SampleCPUUsage(ctx, c.opts.Native, c.opts.SampleWindow)
	if err != nil {
		return 0, err
	}
	c.opts.Metrics.IncrementCPUSamples()
	return frac, nil
}

// Free runs `free` in the named unit. An unknown unit is not an error: it
// is reported as an advisory and megabytes are used instead.
func (c *Client) Free(ctx context.Context, flag string) (MemorySnapshot, error) {
	if c.dispatch.free == nil {
		return MemorySnapshot{}, mismatch(CapFree, c.category)
	}

	unit, ok := platform.ParseFreeFlag(flag)
	if !ok {
		c.advise(Advisory{
			Operation: CapFree.String(),
			Message:   fmt.Sprintf("unknown unit %q, using %s", flag, Megabytes),
			Err:       fmt.Errorf("free flag %q: %w", flag, ErrInvalidParameter),
		})
	}

	snap, err := c.dispatch.free(ctx, unit)
	return snap, c.observe(err)
}

// NormalizeLoadWindow maps a requested load window to the one LoadAverage
// reports: 5 and 15 are kept, anything else becomes 1.
func NormalizeLoadWindow(window int) int {
	switch window {
	case 5, 15:
		return window
	default:
		return 1
	}
}

// LoadAverage returns the load average for a 1, 5 or 15 minute window.
// Any other window, including 0, is treated as 1.
func (c *Client) LoadAverage(ctx context.Context, window int) (float64, error) {
	loads, err := c.opts.Native.LoadAverages(ctx)
	if err != nil {
		return 0, err
	}
	switch NormalizeLoadWindow(window) {
	case 5:
		return loads[1], nil
	case 15:
		return loads[2], nil
	default:
		return loads[0], nil
	}
}

// CPUInfo returns the core count and the models of the first and last core.
func (c *Client) CPUInfo(ctx context.Context) (CPUInfo, error) {
	times, err := c.opts.Native.CPUTimes(ctx)
	if err != nil {
		return CPUInfo{}, err
	}
	return CPUInfo{
		Count:      c.CPUCount(),
		FirstModel: times.FirstModel,
		LastModel:  times.LastModel,
	}, nil
}

// CPUTimes returns accumulated CPU times in milliseconds.
func (c *Client) CPUTimes(ctx context.Context) (CPUTimes, error) {
	return c.opts.Native.CPUTimes(ctx)
}

// Filesystem describes the filesystem holding the working directory. On
// Windows it reports the system drive.
func (c *Client) Filesystem(ctx context.Context) (FilesystemSnapshot, error) {
	if c.dispatch.filesystem == nil {
		return FilesystemSnapshot{}, mismatch(CapFilesystem, c.category)
	}
	snap, err := c.dispatch.filesystem(ctx)
	return snap, c.observe(err)
}

// Processes lists up to limit processes. On Unix-family systems they are
// ordered by descending CPU% as printed by ps. On Windows the enumeration
// order is kept and only Name, PID and ParentPID are set.
func (c *Client) Processes(ctx context.Context, limit int) ([]ProcessEntry, error) {
	if c.dispatch.processes == nil {
		return nil, mismatch(CapProcesses, c.category)
	}
	if limit <= 0 {
		limit = c.opts.ProcessLimit
	}
	entries, err := c.dispatch.processes(ctx, limit)
	return entries, c.observe(err)
}

// UnixUptime parses `uptime`. Unix-family only.
func (c *Client) UnixUptime(ctx context.Context) (UptimeStats, error) {
	if c.dispatch.uptime == nil {
		return UptimeStats{}, mismatch(CapUptime, c.category)
	}
	stats, err := c.dispatch.uptime(ctx)
	return stats, c.observe(err)
}

// WindowsWorkstation parses `net statistics workstation`. Windows only.
func (c *Client) WindowsWorkstation(ctx context.Context) (WorkstationStats, error) {
	if c.dispatch.workstation == nil {
		return WorkstationStats{}, mismatch(CapWorkstation, c.category)
	}
	stats, err := c.dispatch.workstation(ctx)
	return stats, c.observe(err)
}

// WindowsServices lists started services from `net start`. Windows only.
func (c *Client) WindowsServices(ctx context.Context) ([]string, error) {
	if c.dispatch.services == nil {
		return nil, mismatch(CapServices, c.category)
	}
	services, err := c.dispatch.services(ctx)
	return services, c.observe(err)
}

// Motherboard parses `wmic baseboard`. Windows only.
func (c *Client) Motherboard(ctx context.Context) (Motherboard, error) {
	if c.dispatch.motherboard == nil {
		return Motherboard{}, mismatch(CapMotherboard, c.category)
	}
	board, err := c.dispatch.motherboard(ctx)
	return board, c.observe(err)
}

// Username returns the login name of the current user.
func (c *Client) Username() string {
	return platform.Username()
}

// ComputerName returns the network name of the host.
func (c *Client) ComputerName() string {
	return platform.ComputerName()
}

// Host returns static host identity.
func (c *Client) Host(ctx context.Context) (HostInfo, error) {
	return c.opts.Native.HostInfo(ctx)
}
