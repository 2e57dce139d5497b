// Package platform implements host telemetry acquisition for go-sysinfo.
//
// The package classifies the running operating system, reads native counters
// through gopsutil, runs platform utilities (free, df, mount, ps, uptime, net,
// wmic) and parses their text output into typed records.
//
// # Architecture
//
// Every utility has a pure parser that takes the raw output and returns a
// record or a *ParseError:
//
//   - ParseFreeOutput      free -<unit>
//   - ParseDfOutput        df -h -T .        (GNU layout)
//   - ParseBSDDfOutput     df -h .           (macOS and BSD layout)
//   - ParseMountTypes      mount             (macOS and BSD)
//   - ParsePsOutput        ps -eo pcpu,pmem,time,args
//   - ParseUptimeOutput    uptime
//   - ParseWorkstationOutput  net statistics workstation
//   - ParseServicesOutput     net start
//   - ParseMotherboardOutput  wmic baseboard get ...
//
// Parsers never spawn processes. Process execution goes through the
// CommandRunner interface so that tests can replay captured fixtures.
//
// # Fragility
//
// Positional parsing depends on the exact column layout of each utility.
// A different locale or utility version can shift columns; the parsers
// report this as ErrParseFailure with the raw output attached instead of
// returning zeroed fields.
package platform
