package platform

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// NativeReader reads metrics that the operating system exposes through an
// API rather than a utility.
type NativeReader interface {
	CPUTimesReader
	// CPUCount returns the number of logical cores. It never fails.
	CPUCount() int
	// Memory returns total and available memory in bytes.
	Memory(ctx context.Context) (total, available uint64, err error)
	// LoadAverages returns the 1, 5 and 15 minute load averages.
	LoadAverages(ctx context.Context) ([3]float64, error)
	HostInfo(ctx context.Context) (HostInfo, error)
	// Volume reports usage of the volume mounted at path.
	Volume(ctx context.Context, path string) (FilesystemSnapshot, error)
	// Processes enumerates running processes by name, PID and parent PID.
	Processes(ctx context.Context) ([]ProcessEntry, error)
}

// GopsutilReader implements NativeReader with gopsutil.
type GopsutilReader struct{}

// NewNativeReader returns the gopsutil-backed reader.
func NewNativeReader() *GopsutilReader {
	return &GopsutilReader{}
}

// CPUCount returns logical cores, falling back to runtime.NumCPU.
func (GopsutilReader) CPUCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Memory returns total and available bytes.
func (GopsutilReader) Memory(ctx context.Context) (uint64, uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("reading virtual memory: %w", err)
	}
	return vm.Total, vm.Available, nil
}

// LoadAverages returns load.Avg. Windows has no load average and reports
// zeros.
func (GopsutilReader) LoadAverages(ctx context.Context) ([3]float64, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return [3]float64{}, fmt.Errorf("reading load average: %w", err)
	}
	return [3]float64{avg.Load1, avg.Load5, avg.Load15}, nil
}

// CPUTimes sums per-core times and attaches the first and last core model.
func (GopsutilReader) CPUTimes(ctx context.Context) (CPUTimes, error) {
	cores, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return CPUTimes{}, fmt.Errorf("reading cpu times: %w", err)
	}
	if len(cores) == 0 {
		return CPUTimes{}, fmt.Errorf("reading cpu times: %w", ErrUndefinedResult)
	}

	t := SumCPUTimes(cores)
	// Models are a hint only.
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		t.FirstModel = strings.TrimSpace(infos[0].ModelName)
		t.LastModel = strings.TrimSpace(infos[len(infos)-1].ModelName)
	}
	return t, nil
}

// HostInfo returns static host identity.
func (GopsutilReader) HostInfo(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{}, fmt.Errorf("reading host info: %w", err)
	}
	return HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		Uptime:          info.Uptime,
	}, nil
}

// Volume reports usage of the volume at path.
func (GopsutilReader) Volume(ctx context.Context, path string) (FilesystemSnapshot, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return FilesystemSnapshot{}, fmt.Errorf("reading volume %s: %w", path, err)
	}
	return volumeSnapshot(usage), nil
}

// volumeSnapshot renders disk usage in the human-readable form df prints.
func volumeSnapshot(u *disk.UsageStat) FilesystemSnapshot {
	return FilesystemSnapshot{
		Mounted:        u.Path,
		Type:           u.Fstype,
		Size:           humanize.IBytes(u.Total),
		Used:           humanize.IBytes(u.Used),
		Available:      humanize.IBytes(u.Free),
		UsedPercentage: fmt.Sprintf("%.0f%%", u.UsedPercent),
		MountedRoot:    u.Path,
	}
}

// Processes enumerates running processes. Processes that exit during the
// walk are skipped.
func (GopsutilReader) Processes(ctx context.Context) ([]ProcessEntry, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating processes: %w", err)
	}

	entries := make([]ProcessEntry, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		ppid, _ := p.PpidWithContext(ctx)
		entries = append(entries, ProcessEntry{Name: name, PID: p.Pid, ParentPID: ppid})
	}
	return entries, nil
}

// SystemVolume returns the Windows system drive root, e.g. `C:\`.
func SystemVolume() string {
	drive := os.Getenv("SystemDrive")
	if drive == "" {
		drive = "C:"
	}
	return strings.TrimSuffix(drive, `\`) + `\`
}

// ReadVolume is the Windows substitute for ReadFilesystem.
func ReadVolume(ctx context.Context, reader NativeReader, c Category) (FilesystemSnapshot, error) {
	if c.Family() != FamilyWindows {
		return FilesystemSnapshot{}, fmt.Errorf("volume query on %s: %w", c, ErrPlatformMismatch)
	}
	return reader.Volume(ctx, SystemVolume())
}

// EnumerateProcesses is the Windows substitute for ReadProcesses. Entries
// keep the enumerator order.
func EnumerateProcesses(ctx context.Context, reader NativeReader, c Category, limit int) ([]ProcessEntry, error) {
	if c.Family() != FamilyWindows {
		return nil, fmt.Errorf("process enumeration on %s: %w", c, ErrPlatformMismatch)
	}
	entries, err := reader.Processes(ctx)
	if err != nil {
		return nil, err
	}
	return truncateProcesses(entries, limit), nil
}
