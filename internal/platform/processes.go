package platform

import (
	"context"
	"fmt"
	"strings"
)

// DefaultProcessLimit is used when a caller passes a non-positive limit.
const DefaultProcessLimit = 10

// psArgs returns the `ps` arguments that list CPU%, memory%, CPU time and the
// full command, sorted by descending CPU%. Android's toybox ps rejects
// --sort and sorts with -k instead.
func psArgs(c Category) []string {
	switch {
	case c.bsdStyle():
		return []string{"-Ao", "pcpu,pmem,time,args", "-r"}
	case c == Android:
		return []string{"-A", "-o", "pcpu,pmem,time,args", "-k", "-pcpu"}
	}
	return []string{"-eo", "pcpu,pmem,time,args", "--sort=-pcpu"}
}

// ParsePsOutput parses `ps -o pcpu,pmem,time,args` output and keeps the first
// limit rows in the order ps printed them:
//
//	%CPU %MEM     TIME COMMAND
//	 2.3  1.5 00:12:34 /usr/lib/firefox/firefox -contentproc
//
// Rows are split on whitespace and everything after the time column is the
// command. Counting the leading alignment blank, the command starts at the
// 5th token; a time format that itself contains spaces would shift it.
func ParsePsOutput(raw string, limit int) ([]ProcessEntry, error) {
	if limit <= 0 {
		limit = DefaultProcessLimit
	}

	rows := dataRows(raw)
	if len(rows) > limit {
		rows = rows[:limit]
	}

	entries := make([]ProcessEntry, 0, len(rows))
	for _, row := range rows {
		fields := strings.Fields(row)
		if len(fields) < 4 {
			return nil, parseError("ps", raw, "expected at least 4 columns in %q", row)
		}
		entries = append(entries, ProcessEntry{
			CPU:     fields[0],
			Memory:  fields[1],
			Time:    fields[2],
			Command: strings.Join(fields[3:], " "),
		})
	}
	return entries, nil
}

// ReadProcesses lists the top processes by CPU on Unix-family systems.
func ReadProcesses(ctx context.Context, runner CommandRunner, c Category, limit int) ([]ProcessEntry, error) {
	if c.Family() == FamilyWindows {
		return nil, fmt.Errorf("ps on %s: %w", c, ErrPlatformMismatch)
	}

	output, err := runner.Run(ctx, "ps", psArgs(c)...)
	if err != nil {
		return nil, err
	}
	return ParsePsOutput(output, limit)
}

// truncateProcesses keeps the first limit entries of an enumerator result.
// The enumerator order is kept as is; it is not sorted by CPU.
func truncateProcesses(entries []ProcessEntry, limit int) []ProcessEntry {
	if limit <= 0 {
		limit = DefaultProcessLimit
	}
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
