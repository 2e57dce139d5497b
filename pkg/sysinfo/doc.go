// Package sysinfo reports point-in-time operating system telemetry: CPU
// count and usage, memory, load averages, filesystem usage, running
// processes and host identity.
//
// Values come from OS counters where an API exists (via gopsutil) and from
// parsing platform utilities (free, df, ps, uptime, net, wmic) where it
// does not. Operations that only exist on one platform family return
// ErrPlatformMismatch elsewhere; use Client.Supports to check first.
//
// Basic usage:
//
//	client := sysinfo.New(nil)
//
//	idle, err := client.CPUUsage(ctx) // idle fraction over one second
//	if errors.Is(err, sysinfo.ErrUndefinedResult) {
//	    // no ticks elapsed between samples
//	}
//
//	procs, err := client.Processes(ctx, 5)
//
// Note that CPUUsage returns the idle fraction, not the busy fraction.
//
// Parsers read utility output by position and depend on the C locale and
// the utility versions documented on each Parse function. Output that does
// not match yields an error wrapping ErrParseFailure that carries the raw
// text.
package sysinfo
