package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/opd-ai/go-sysinfo/pkg/sysinfo"
)

func (e *env) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "platform",
			Usage:  "Show the detected platform and what it supports",
			Action: e.platformAction,
		},
		{
			Name:   "cpu",
			Usage:  "Show core count and models",
			Action: e.cpuAction,
		},
		{
			Name:   "usage",
			Usage:  "Sample CPU idle time over the sample window",
			Action: e.usageAction,
		},
		{
			Name:   "memory",
			Usage:  "Show total and free memory",
			Action: e.memoryAction,
		},
		{
			Name:   "free",
			Usage:  "Run free(1) in the given unit",
			Action: e.freeAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "unit",
					Usage: "bytes, kilobytes, megabytes, gigabytes, terabytes or petabytes",
				},
			},
		},
		{
			Name:   "load",
			Usage:  "Show load averages",
			Action: e.loadAction,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "window",
					Usage: "Only the 1, 5 or 15 minute average",
				},
			},
		},
		{
			Name:    "fs",
			Aliases: []string{"filesystem"},
			Usage:   "Show the filesystem holding the working directory",
			Action:  e.filesystemAction,
		},
		{
			Name:   "ps",
			Usage:  "List the busiest processes",
			Action: e.processesAction,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"n"},
					Usage:   "Number of processes (0 uses the configured limit)",
				},
			},
		},
		{
			Name:   "uptime",
			Usage:  "Show uptime, users and load (Unix)",
			Action: e.uptimeAction,
		},
		{
			Name:   "workstation",
			Usage:  "Show workstation network statistics (Windows)",
			Action: e.workstationAction,
		},
		{
			Name:   "services",
			Usage:  "List started services (Windows)",
			Action: e.servicesAction,
		},
		{
			Name:   "motherboard",
			Usage:  "Show baseboard identity (Windows)",
			Action: e.motherboardAction,
		},
		{
			Name:   "whoami",
			Usage:  "Show the current user and computer name",
			Action: e.whoamiAction,
		},
		{
			Name:   "host",
			Usage:  "Show host identity and uptime",
			Action: e.hostAction,
		},
		{
			Name:   "report",
			Usage:  "Gather every supported section concurrently",
			Action: e.reportAction,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "Emit JSON instead of tables",
				},
			},
		},
	}
}

func (e *env) platformAction(c *cli.Context) error {
	p := e.client.Platform()

	var supported []string
	for _, capability := range sysinfo.Capabilities() {
		if e.client.Supports(capability) {
			supported = append(supported, capability.String())
		}
	}
	return printFields(e.stdout, [][]string{
		{"Platform", p.String()},
		{"Family", p.Family().String()},
		{"Supports", strings.Join(supported, ", ")},
	})
}

func (e *env) cpuAction(c *cli.Context) error {
	info, err := e.client.CPUInfo(c.Context)
	if err != nil {
		return err
	}
	return printFields(e.stdout, cpuRows(info))
}

func (e *env) usageAction(c *cli.Context) error {
	idle, err := e.client.CPUUsage(c.Context)
	if err != nil {
		return err
	}
	return printFields(e.stdout, [][]string{
		{"Idle", formatPercent(idle)},
		{"Busy", formatPercent(1 - idle)},
		{"Window", e.cfg.SampleWindow.String()},
	})
}

func (e *env) memoryAction(c *cli.Context) error {
	total, err := e.client.TotalMemory(c.Context)
	if err != nil {
		return err
	}
	free, err := e.client.FreeMemory(c.Context)
	if err != nil {
		return err
	}
	return printFields(e.stdout, memoryRows(total, free))
}

func (e *env) freeAction(c *cli.Context) error {
	unit := e.cfg.FreeFlag
	if c.IsSet("unit") {
		unit = c.String("unit")
	}

	snap, err := e.client.Free(c.Context, unit)
	printAdvisories(e.stderr, e.takeAdvisories())
	if err != nil {
		return err
	}
	return printTable(e.stdout, freeHeader, [][]string{freeRow(snap)})
}

func (e *env) loadAction(c *cli.Context) error {
	windows := []int{1, 5, 15}
	if c.IsSet("window") {
		windows = []int{sysinfo.NormalizeLoadWindow(c.Int("window"))}
	}

	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		v, err := e.client.LoadAverage(c.Context, w)
		if err != nil {
			return err
		}
		rows = append(rows, []string{strconv.Itoa(w) + "m", formatLoad(v)})
	}
	return printTable(e.stdout, []string{"WINDOW", "LOAD"}, rows)
}

func (e *env) filesystemAction(c *cli.Context) error {
	fs, err := e.client.Filesystem(c.Context)
	if err != nil {
		return err
	}
	return printTable(e.stdout, filesystemHeader, [][]string{filesystemRow(fs)})
}

func (e *env) processesAction(c *cli.Context) error {
	procs, err := e.client.Processes(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(procs) == 0 {
		fmt.Fprintln(e.stdout, "no processes")
		return nil
	}
	header, rows := processTable(e.client.Platform() == sysinfo.Windows, procs)
	return printTable(e.stdout, header, rows)
}

func (e *env) uptimeAction(c *cli.Context) error {
	u, err := e.client.UnixUptime(c.Context)
	if err != nil {
		return err
	}
	return printFields(e.stdout, uptimeRows(u))
}

func (e *env) workstationAction(c *cli.Context) error {
	s, err := e.client.WindowsWorkstation(c.Context)
	if err != nil {
		return err
	}
	return printFields(e.stdout, workstationRows(s))
}

func (e *env) servicesAction(c *cli.Context) error {
	services, err := e.client.WindowsServices(c.Context)
	if err != nil {
		return err
	}
	for _, s := range services {
		fmt.Fprintln(e.stdout, s)
	}
	return nil
}

func (e *env) motherboardAction(c *cli.Context) error {
	m, err := e.client.Motherboard(c.Context)
	if err != nil {
		return err
	}
	return printFields(e.stdout, motherboardRows(m))
}

func (e *env) whoamiAction(c *cli.Context) error {
	return printFields(e.stdout, [][]string{
		{"User", e.client.Username()},
		{"Computer", e.client.ComputerName()},
	})
}

func (e *env) hostAction(c *cli.Context) error {
	h, err := e.client.Host(c.Context)
	if err != nil {
		return err
	}
	return printFields(e.stdout, hostRows(h))
}
