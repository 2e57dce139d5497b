package platform

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// FreeFlag selects the unit `free` reports in.
type FreeFlag int

const (
	Bytes FreeFlag = iota
	Kilobytes
	Megabytes
	Gigabytes
	Terabytes
	Petabytes
)

// freeFlags maps each unit to its name and `free` argument.
var freeFlags = [...]struct {
	name string
	arg  string
}{
	Bytes:     {"bytes", "-b"},
	Kilobytes: {"kilobytes", "-k"},
	Megabytes: {"megabytes", "-m"},
	Gigabytes: {"gigabytes", "-g"},
	Terabytes: {"terabytes", "--tera"},
	Petabytes: {"petabytes", "--peta"},
}

// String returns the flag name, e.g. "megabytes".
func (f FreeFlag) String() string {
	if f < 0 || int(f) >= len(freeFlags) {
		return "unknown"
	}
	return freeFlags[f].name
}

// Arg returns the command-line argument for `free`.
func (f FreeFlag) Arg() string {
	if f < 0 || int(f) >= len(freeFlags) {
		return freeFlags[Megabytes].arg
	}
	return freeFlags[f].arg
}

// ParseFreeFlag looks up a flag by name (case-insensitive).
func ParseFreeFlag(s string) (FreeFlag, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, f := range freeFlags {
		if f.name == s {
			return FreeFlag(i), true
		}
	}
	return Megabytes, false
}

// whitespaceRun matches consecutive whitespace, including \r.
var whitespaceRun = regexp.MustCompile(`\s+`)

// freeColumns are the positional indexes of total, free, buffers and cached
// in the first data row once whitespace is collapsed.
var freeColumns = [4]int{1, 3, 5, 6}

// ParseFreeOutput parses `free` output. Only the second line is read and its
// columns are taken by fixed position, so the layout must match procps
//
//	             total       used       free     shared    buffers     cached
//	Mem:          7983       7767        216          0        156       4460
//
// Newer procps prints buff/cache and available in columns 5 and 6, which
// makes Used negative; see MemorySnapshot.Valid.
func ParseFreeOutput(raw string, flag FreeFlag) (MemorySnapshot, error) {
	const command = "free"

	lines := strings.Split(raw, "\n")
	if len(lines) < 2 {
		return MemorySnapshot{}, parseError(command, raw, "expected a header and a data row, got %d line(s)", len(lines))
	}

	cols := strings.Split(whitespaceRun.ReplaceAllString(lines[1], " "), " ")
	if len(cols) <= freeColumns[3] {
		return MemorySnapshot{}, parseError(command, raw, "expected at least %d columns, got %d", freeColumns[3]+1, len(cols))
	}

	var values [4]float64
	for i, idx := range freeColumns {
		v, err := strconv.ParseFloat(cols[idx], 64)
		if err != nil {
			return MemorySnapshot{}, parseError(command, raw, "column %d: %v", idx, err)
		}
		values[i] = v
	}

	snap := MemorySnapshot{
		Total:   values[0],
		Free:    values[1],
		Buffers: values[2],
		Cached:  values[3],
		Flag:    flag,
	}
	snap.Used = snap.Total - (snap.Free + snap.Buffers + snap.Cached)
	return snap, nil
}

// ReadMemory runs `free` with the unit flag and parses the result. A
// snapshot with negative Used is reported as a parse failure.
func ReadMemory(ctx context.Context, runner CommandRunner, flag FreeFlag) (MemorySnapshot, error) {
	output, err := runner.Run(ctx, "free", flag.Arg())
	if err != nil {
		return MemorySnapshot{}, err
	}
	snap, err := ParseFreeOutput(output, flag)
	if err != nil {
		return MemorySnapshot{}, err
	}
	if !snap.Valid() {
		return MemorySnapshot{}, parseError("free", output, "used memory is negative (%g), columns do not match the procps layout", snap.Used)
	}
	return snap, nil
}
