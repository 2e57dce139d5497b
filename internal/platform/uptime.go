package platform

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// usersPattern matches the "2 users" / "1 user" segment of `uptime`.
var usersPattern = regexp.MustCompile(`(\d+)\s+users?\b`)

// loadSeparator separates GNU load averages. A comma not followed by
// whitespace is a decimal comma and stays inside the token.
var loadSeparator = regexp.MustCompile(`,\s+`)

// ParseUptimeOutput parses `uptime` output. Both layouts are accepted:
//
//	10:14:23 up 3 days,  2:04,  2 users,  load average: 0.52, 0.58, 0.59
//	10:14  up 3 days,  2:04, 2 users, load averages: 1.23 1.45 1.67
//
// Users is 0 when the segment is absent (busybox).
func ParseUptimeOutput(raw string) (UptimeStats, error) {
	const command = "uptime"

	line := strings.TrimSpace(strings.SplitN(strings.ReplaceAll(raw, "\r", ""), "\n", 2)[0])

	li := strings.Index(line, "load average")
	if li < 0 {
		return UptimeStats{}, parseError(command, raw, "missing load average")
	}
	colon := strings.Index(line[li:], ":")
	if colon < 0 {
		return UptimeStats{}, parseError(command, raw, "missing ':' after load average")
	}

	segment := strings.TrimSpace(line[li+colon+1:])
	var loads []string
	if loadSeparator.MatchString(segment) {
		loads = loadSeparator.Split(segment, -1)
	} else {
		loads = strings.Fields(segment)
	}
	if len(loads) != 3 {
		return UptimeStats{}, parseError(command, raw, "expected 3 load averages, got %d", len(loads))
	}

	var stats UptimeStats
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(loads[i], 64)
		if err != nil {
			return UptimeStats{}, parseError(command, raw, "load average %d: %v", i, err)
		}
		stats.Loads[i] = v
	}

	head := line[:li]
	up := strings.Index(head, "up ")
	if up < 0 {
		return UptimeStats{}, parseError(command, raw, "missing 'up'")
	}
	rest := head[up+len("up "):]

	if m := usersPattern.FindStringSubmatchIndex(rest); m != nil {
		n, err := strconv.Atoi(rest[m[2]:m[3]])
		if err != nil {
			return UptimeStats{}, parseError(command, raw, "user count: %v", err)
		}
		stats.Users = n
		rest = rest[:m[0]]
	}

	stats.Uptime = strings.TrimRight(strings.TrimSpace(whitespaceRun.ReplaceAllString(rest, " ")), ",")
	if stats.Uptime == "" {
		return UptimeStats{}, parseError(command, raw, "empty uptime")
	}
	return stats, nil
}

// ReadUptime runs `uptime` on Unix-family systems.
func ReadUptime(ctx context.Context, runner CommandRunner, c Category) (UptimeStats, error) {
	if c.Family() == FamilyWindows {
		return UptimeStats{}, fmt.Errorf("uptime on %s: %w", c, ErrPlatformMismatch)
	}

	output, err := runner.Run(ctx, "uptime")
	if err != nil {
		return UptimeStats{}, err
	}
	return ParseUptimeOutput(output)
}
