package sysinfo

import (
	"context"

	"github.com/opd-ai/go-sysinfo/internal/platform"
)

// Capability names a platform-gated operation.
type Capability int

const (
	CapFree Capability = iota
	CapFilesystem
	CapProcesses
	CapUptime
	CapWorkstation
	CapServices
	CapMotherboard
)

var capabilityNames = [...]string{
	CapFree:        "free",
	CapFilesystem:  "filesystem",
	CapProcesses:   "processes",
	CapUptime:      "uptime",
	CapWorkstation: "workstation",
	CapServices:    "services",
	CapMotherboard: "motherboard",
}

// Capabilities lists every platform-gated operation.
func Capabilities() []Capability {
	caps := make([]Capability, len(capabilityNames))
	for i := range caps {
		caps[i] = Capability(i)
	}
	return caps
}

// String returns the capability name.
func (c Capability) String() string {
	if c < 0 || int(c) >= len(capabilityNames) {
		return "unknown"
	}
	return capabilityNames[c]
}

// handlers is the dispatch table for one platform family. A nil entry means
// the family does not support the operation.
type handlers struct {
	free        func(ctx context.Context, flag FreeFlag) (MemorySnapshot, error)
	filesystem  func(ctx context.Context) (FilesystemSnapshot, error)
	processes   func(ctx context.Context, limit int) ([]ProcessEntry, error)
	uptime      func(ctx context.Context) (UptimeStats, error)
	workstation func(ctx context.Context) (WorkstationStats, error)
	services    func(ctx context.Context) ([]string, error)
	motherboard func(ctx context.Context) (Motherboard, error)
}

// newHandlers builds the table once for the resolved category.
func newHandlers(c Category, runner CommandRunner, native NativeReader) handlers {
	if c.Family() == platform.FamilyWindows {
		return handlers{
			filesystem: func(ctx context.Context) (FilesystemSnapshot, error) {
				return platform.ReadVolume(ctx, native, c)
			},
			processes: func(ctx context.Context, limit int) ([]ProcessEntry, error) {
				return platform.EnumerateProcesses(ctx, native, c, limit)
			},
			workstation: func(ctx context.Context) (WorkstationStats, error) {
				return platform.ReadWorkstation(ctx, runner, c)
			},
			services: func(ctx context.Context) ([]string, error) {
				return platform.ReadServices(ctx, runner, c)
			},
			motherboard: func(ctx context.Context) (Motherboard, error) {
				return platform.ReadMotherboard(ctx, runner, c)
			},
		}
	}

	return handlers{
		free: func(ctx context.Context, flag FreeFlag) (MemorySnapshot, error) {
			return platform.ReadMemory(ctx, runner, flag)
		},
		filesystem: func(ctx context.Context) (FilesystemSnapshot, error) {
			return platform.ReadFilesystem(ctx, runner, c)
		},
		processes: func(ctx context.Context, limit int) ([]ProcessEntry, error) {
			return platform.ReadProcesses(ctx, runner, c, limit)
		},
		uptime: func(ctx context.Context) (UptimeStats, error) {
			return platform.ReadUptime(ctx, runner, c)
		},
	}
}

// supports reports whether the table has an entry for capability.
func (h handlers) supports(capability Capability) bool {
	switch capability {
	case CapFree:
		return h.free != nil
	case CapFilesystem:
		return h.filesystem != nil
	case CapProcesses:
		return h.processes != nil
	case CapUptime:
		return h.uptime != nil
	case CapWorkstation:
		return h.workstation != nil
	case CapServices:
		return h.services != nil
	case CapMotherboard:
		return h.motherboard != nil
	default:
		return false
	}
}
