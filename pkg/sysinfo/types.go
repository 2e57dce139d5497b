package sysinfo

import "github.com/opd-ai/go-sysinfo/internal/platform"

// Category is the normalized operating system classification.
type Category = platform.Category

// Categories.
const (
	Unknown   = platform.Unknown
	Linux     = platform.Linux
	Macintosh = platform.Macintosh
	Windows   = platform.Windows
	Android   = platform.Android
	Unix      = platform.Unix
	SunOS     = platform.SunOS
	BSD       = platform.BSD
)

// FreeFlag selects the unit `free` reports in.
type FreeFlag = platform.FreeFlag

// Units accepted by Client.Free.
const (
	Bytes     = platform.Bytes
	Kilobytes = platform.Kilobytes
	Megabytes = platform.Megabytes
	Gigabytes = platform.Gigabytes
	Terabytes = platform.Terabytes
	Petabytes = platform.Petabytes
)

// Records returned by Client methods.
type (
	MemorySnapshot     = platform.MemorySnapshot
	CPUTimes           = platform.CPUTimes
	FilesystemSnapshot = platform.FilesystemSnapshot
	ProcessEntry       = platform.ProcessEntry
	UptimeStats        = platform.UptimeStats
	WorkstationStats   = platform.WorkstationStats
	Motherboard        = platform.Motherboard
	HostInfo           = platform.HostInfo
)

// CPUInfo describes the logical cores.
type CPUInfo struct {
	Count      int
	FirstModel string
	LastModel  string
}
