package platform

// CPUTimes accumulates CPU time across all logical cores.
// Times are in milliseconds; Total >= Idle always holds for values
// produced by SumCPUTimes.
type CPUTimes struct {
	Idle  uint64
	Total uint64
	// FirstModel and LastModel are the model strings of the first and last
	// enumerated core. They are a hint and may not represent every core.
	FirstModel string
	LastModel  string
}

// MemorySnapshot is one parsed row of `free` output, in the unit selected
// by Flag.
type MemorySnapshot struct {
	Total   float64
	Free    float64
	Buffers float64
	Cached  float64
	// Used is Total - (Free + Buffers + Cached). A negative value means the
	// columns did not line up with the expected layout.
	Used float64
	Flag FreeFlag
}

// Valid reports whether Used is non-negative. Callers should treat an
// invalid snapshot as a parse failure.
func (m MemorySnapshot) Valid() bool {
	return m.Used >= 0
}

// FilesystemSnapshot describes the filesystem holding the working directory.
// Sizes keep the human-readable form printed by the utility.
type FilesystemSnapshot struct {
	Mounted        string
	Type           string
	Size           string
	Used           string
	Available      string
	UsedPercentage string
	MountedRoot    string
}

// ProcessEntry is one row of the process listing. Unix listings fill
// Command, Time, CPU and Memory; the Windows enumerator fills Name, PID and
// ParentPID.
type ProcessEntry struct {
	Command string
	Time    string
	CPU     string
	Memory  string

	Name      string
	PID       int32
	ParentPID int32
}

// UptimeStats is parsed from `uptime`.
type UptimeStats struct {
	Uptime string
	Users  int
	// Loads holds the 1, 5 and 15 minute load averages.
	Loads [3]float64
}

// WorkstationStats is parsed from `net statistics workstation`.
type WorkstationStats struct {
	ServerMessageBlocks uint64
	SMBsTransmitted     uint64
	BytesTransmitted    uint64
	BytesReceived       uint64
	ReadOp              uint64
	WriteOp             uint64
	DesktopName         string
	Since               string
}

// Motherboard is parsed from `wmic baseboard`.
type Motherboard struct {
	Manufacturer string
	Product      string
	SerialNumber string
	Version      string
}

// HostInfo contains static host identity.
type HostInfo struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	KernelArch      string
	// Uptime is in seconds.
	Uptime uint64
}
