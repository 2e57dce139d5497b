package platform

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const netCompleted = "The command completed successfully."

// labelGap separates a label from its value in `net statistics` output.
var labelGap = regexp.MustCompile(`\s{3,}`)

// workstationFields maps `net statistics workstation` labels to setters.
var workstationFields = map[string]func(*WorkstationStats, uint64){
	"Bytes received":                           func(s *WorkstationStats, v uint64) { s.BytesReceived = v },
	"Bytes transmitted":                        func(s *WorkstationStats, v uint64) { s.BytesTransmitted = v },
	"Server Message Blocks (SMBs) received":    func(s *WorkstationStats, v uint64) { s.ServerMessageBlocks = v },
	"Server Message Blocks (SMBs) transmitted": func(s *WorkstationStats, v uint64) { s.SMBsTransmitted = v },
	"Read operations":                          func(s *WorkstationStats, v uint64) { s.ReadOp = v },
	"Write operations":                         func(s *WorkstationStats, v uint64) { s.WriteOp = v },
}

// ParseWorkstationOutput parses `net statistics workstation`:
//
//	Workstation Statistics for \\DESKTOP-7Q2L
//
//	Statistics since 10/14/2026 8:02:11 AM
//
//	  Bytes received                               2984123
//	  Server Message Blocks (SMBs) received        1290
//
// Every counter in workstationFields must be present.
func ParseWorkstationOutput(raw string) (WorkstationStats, error) {
	const command = "net statistics workstation"

	var stats WorkstationStats
	seen := make(map[string]bool, len(workstationFields))

	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r", ""), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line == netCompleted:
			continue
		case strings.HasPrefix(line, "Workstation Statistics for "):
			stats.DesktopName = strings.TrimPrefix(strings.TrimPrefix(line, "Workstation Statistics for "), `\\`)
			continue
		case strings.HasPrefix(line, "Statistics since "):
			stats.Since = strings.TrimPrefix(line, "Statistics since ")
			continue
		}

		parts := labelGap.Split(line, 2)
		if len(parts) != 2 {
			continue
		}
		set, ok := workstationFields[parts[0]]
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return WorkstationStats{}, parseError(command, raw, "%s: %v", parts[0], err)
		}
		set(&stats, v)
		seen[parts[0]] = true
	}

	if stats.DesktopName == "" {
		return WorkstationStats{}, parseError(command, raw, "missing workstation name")
	}
	for label := range workstationFields {
		if !seen[label] {
			return WorkstationStats{}, parseError(command, raw, "missing %q", label)
		}
	}
	return stats, nil
}

// ParseServicesOutput parses `net start` into the list of started services.
//
//	These Windows services are started:
//
//	   Application Information
//	   Background Tasks Infrastructure Service
//
//	The command completed successfully.
func ParseServicesOutput(raw string) ([]string, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r", ""), "\n")

	start := -1
	for i, line := range lines {
		if strings.HasSuffix(strings.TrimSpace(line), ":") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, parseError("net start", raw, "missing service list header")
	}

	services := []string{}
	for _, line := range lines[start:] {
		name := strings.TrimSpace(line)
		if name == "" || name == netCompleted {
			continue
		}
		services = append(services, name)
	}
	return services, nil
}

// ReadWorkstation runs `net statistics workstation` on Windows.
func ReadWorkstation(ctx context.Context, runner CommandRunner, c Category) (WorkstationStats, error) {
	if c.Family() != FamilyWindows {
		return WorkstationStats{}, fmt.Errorf("net statistics on %s: %w", c, ErrPlatformMismatch)
	}

	output, err := runner.Run(ctx, "net", "statistics", "workstation")
	if err != nil {
		return WorkstationStats{}, err
	}
	return ParseWorkstationOutput(output)
}

// ReadServices runs `net start` on Windows.
func ReadServices(ctx context.Context, runner CommandRunner, c Category) ([]string, error) {
	if c.Family() != FamilyWindows {
		return nil, fmt.Errorf("net start on %s: %w", c, ErrPlatformMismatch)
	}

	output, err := runner.Run(ctx, "net", "start")
	if err != nil {
		return nil, err
	}
	return ParseServicesOutput(output)
}
