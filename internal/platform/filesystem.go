package platform

import (
	"context"
	"fmt"
	"strings"
)

// dataRows returns the non-empty lines after the header, with \r removed.
func dataRows(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r", ""), "\n")
	if len(lines) < 2 {
		return nil
	}
	rows := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

// dfRow joins a data row that df wrapped because the device name was too
// long for its column (device alone on the first line).
func dfRow(raw string) (string, bool) {
	rows := dataRows(raw)
	if len(rows) == 0 {
		return "", false
	}
	if len(strings.Fields(rows[0])) == 1 && len(rows) > 1 {
		return rows[0] + " " + rows[1], true
	}
	return rows[0], true
}

// percentIndex returns the index of the first token ending in '%' at or
// after from, or -1.
func percentIndex(tokens []string, from int) int {
	for i := from; i < len(tokens); i++ {
		if strings.HasSuffix(tokens[i], "%") {
			return i
		}
	}
	return -1
}

// dfTokens splits a df row on whitespace. Device names and mount points
// may contain spaces, so callers rebuild them relative to the Use% column
// instead of trusting a fixed position.
func dfTokens(row string) []string {
	return strings.Fields(row)
}

// ParseDfOutput parses GNU `df -h -T` output for a single filesystem:
//
//	Filesystem     Type  Size  Used Avail Use% Mounted on
//	/dev/nvme0n1p2 ext4  468G  187G  258G  43% /
func ParseDfOutput(raw string) (FilesystemSnapshot, error) {
	const command = "df"

	row, ok := dfRow(raw)
	if !ok {
		return FilesystemSnapshot{}, parseError(command, raw, "no data row")
	}

	tokens := dfTokens(row)
	// device, type, size, used, avail precede Use%
	pct := percentIndex(tokens, 5)
	if pct < 0 || pct == len(tokens)-1 {
		return FilesystemSnapshot{}, parseError(command, raw, "missing Use%% or mount point column in %q", row)
	}

	return FilesystemSnapshot{
		Mounted:        strings.Join(tokens[:pct-4], " "),
		Type:           tokens[pct-4],
		Size:           tokens[pct-3],
		Used:           tokens[pct-2],
		Available:      tokens[pct-1],
		UsedPercentage: tokens[pct],
		MountedRoot:    strings.Join(tokens[pct+1:], " "),
	}, nil
}

// ParseBSDDfOutput parses BSD `df -h` output, which has no type column.
// macOS adds inode columns between Capacity and the mount point:
//
//	Filesystem       Size   Used  Avail Capacity iused      ifree %iused  Mounted on
//	/dev/disk3s1s1  460Gi  9.5Gi  323Gi     3%  403755 3385375800    0%   /
//
// The Type field is left empty; see ParseMountTypes.
func ParseBSDDfOutput(raw string) (FilesystemSnapshot, error) {
	const command = "df"

	row, ok := dfRow(raw)
	if !ok {
		return FilesystemSnapshot{}, parseError(command, raw, "no data row")
	}

	tokens := dfTokens(row)
	capacity := percentIndex(tokens, 4)
	if capacity < 0 || capacity == len(tokens)-1 {
		return FilesystemSnapshot{}, parseError(command, raw, "missing Capacity or mount point column in %q", row)
	}

	rest := tokens[capacity+1:]
	if len(rest) > 3 && strings.HasSuffix(rest[2], "%") {
		rest = rest[3:]
	}

	return FilesystemSnapshot{
		Mounted:        strings.Join(tokens[:capacity-3], " "),
		Size:           tokens[capacity-3],
		Used:           tokens[capacity-2],
		Available:      tokens[capacity-1],
		UsedPercentage: tokens[capacity],
		MountedRoot:    strings.Join(rest, " "),
	}, nil
}

// ParseMountTypes parses BSD `mount` output into a mount point to filesystem
// type map. Format: /dev/disk1s1 on / (apfs, local, journaled)
func ParseMountTypes(raw string) map[string]string {
	types := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		parts := strings.SplitN(line, " on ", 2)
		if len(parts) != 2 {
			continue
		}

		rest := parts[1]
		idx := strings.LastIndex(rest, " (")
		if idx == -1 {
			continue
		}

		mountPoint := rest[:idx]
		opts := strings.TrimSuffix(strings.TrimSpace(rest[idx+2:]), ")")
		fsType := strings.TrimSpace(strings.SplitN(opts, ",", 2)[0])
		if fsType != "" {
			types[mountPoint] = fsType
		}
	}
	return types
}

// ReadFilesystem reports the filesystem holding the working directory.
// BSD-style systems have no `df -T`, so the type comes from `mount`.
func ReadFilesystem(ctx context.Context, runner CommandRunner, c Category) (FilesystemSnapshot, error) {
	if c.Family() == FamilyWindows {
		return FilesystemSnapshot{}, fmt.Errorf("df on %s: %w", c, ErrPlatformMismatch)
	}

	if !c.bsdStyle() {
		output, err := runner.Run(ctx, "df", "-h", "-T", ".")
		if err != nil {
			return FilesystemSnapshot{}, err
		}
		return ParseDfOutput(output)
	}

	output, err := runner.Run(ctx, "df", "-h", ".")
	if err != nil {
		return FilesystemSnapshot{}, err
	}
	snap, err := ParseBSDDfOutput(output)
	if err != nil {
		return FilesystemSnapshot{}, err
	}

	mounts, err := runner.Run(ctx, "mount")
	if err != nil {
		return FilesystemSnapshot{}, fmt.Errorf("reading filesystem type: %w", err)
	}
	snap.Type = ParseMountTypes(mounts)[snap.MountedRoot]
	return snap, nil
}
