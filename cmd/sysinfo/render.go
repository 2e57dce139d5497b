package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/opd-ai/go-sysinfo/pkg/sysinfo"
)

// printTable renders a header row plus rows, unboxed.
func printTable(w io.Writer, header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)

	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed(false).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func printFields(w io.Writer, rows [][]string) error {
	return printTable(w, []string{"FIELD", "VALUE"}, rows)
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, pterm.FgCyan.Sprint(title))
}

func printAdvisories(w io.Writer, advisories []sysinfo.Advisory) {
	for _, a := range advisories {
		fmt.Fprintln(w, pterm.FgYellow.Sprint("warning: ")+a.String())
	}
}

func formatLoad(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cpuRows(info sysinfo.CPUInfo) [][]string {
	return [][]string{
		{"Cores", strconv.Itoa(info.Count)},
		{"First model", info.FirstModel},
		{"Last model", info.LastModel},
	}
}

func memoryRows(total, free uint64) [][]string {
	used := uint64(0)
	if total > free {
		used = total - free
	}
	return [][]string{
		{"Total", humanize.IBytes(total)},
		{"Free", humanize.IBytes(free)},
		{"Used", humanize.IBytes(used)},
	}
}

var freeHeader = []string{"TOTAL", "FREE", "BUFFERS", "CACHED", "USED", "UNIT"}

func freeRow(s sysinfo.MemorySnapshot) []string {
	return []string{
		formatAmount(s.Total),
		formatAmount(s.Free),
		formatAmount(s.Buffers),
		formatAmount(s.Cached),
		formatAmount(s.Used),
		s.Flag.String(),
	}
}

var filesystemHeader = []string{"MOUNTED", "TYPE", "SIZE", "USED", "AVAIL", "USE%", "ROOT"}

func filesystemRow(f sysinfo.FilesystemSnapshot) []string {
	return []string{f.Mounted, f.Type, f.Size, f.Used, f.Available, f.UsedPercentage, f.MountedRoot}
}

// processTable picks the columns the platform's listing fills.
func processTable(windows bool, procs []sysinfo.ProcessEntry) ([]string, [][]string) {
	rows := make([][]string, 0, len(procs))
	if windows {
		for _, p := range procs {
			rows = append(rows, []string{
				strconv.FormatInt(int64(p.PID), 10),
				strconv.FormatInt(int64(p.ParentPID), 10),
				p.Name,
			})
		}
		return []string{"PID", "PPID", "NAME"}, rows
	}
	for _, p := range procs {
		rows = append(rows, []string{p.CPU, p.Memory, p.Time, p.Command})
	}
	return []string{"%CPU", "%MEM", "TIME", "COMMAND"}, rows
}

func uptimeRows(u sysinfo.UptimeStats) [][]string {
	return [][]string{
		{"Up", u.Uptime},
		{"Users", strconv.Itoa(u.Users)},
		{"Load", strings.Join([]string{formatLoad(u.Loads[0]), formatLoad(u.Loads[1]), formatLoad(u.Loads[2])}, " ")},
	}
}

func workstationRows(s sysinfo.WorkstationStats) [][]string {
	return [][]string{
		{"Workstation", s.DesktopName},
		{"Since", s.Since},
		{"Bytes received", humanize.IBytes(s.BytesReceived)},
		{"Bytes transmitted", humanize.IBytes(s.BytesTransmitted)},
		{"SMBs received", humanize.Comma(int64(s.ServerMessageBlocks))},
		{"SMBs transmitted", humanize.Comma(int64(s.SMBsTransmitted))},
		{"Read operations", humanize.Comma(int64(s.ReadOp))},
		{"Write operations", humanize.Comma(int64(s.WriteOp))},
	}
}

func motherboardRows(m sysinfo.Motherboard) [][]string {
	return [][]string{
		{"Manufacturer", m.Manufacturer},
		{"Product", m.Product},
		{"Serial number", m.SerialNumber},
		{"Version", m.Version},
	}
}

func hostRows(h sysinfo.HostInfo) [][]string {
	return [][]string{
		{"Hostname", h.Hostname},
		{"OS", h.OS},
		{"Platform", strings.TrimSpace(h.Platform + " " + h.PlatformVersion)},
		{"Kernel", strings.TrimSpace(h.KernelVersion + " " + h.KernelArch)},
		{"Uptime", (time.Duration(h.Uptime) * time.Second).String()},
	}
}
