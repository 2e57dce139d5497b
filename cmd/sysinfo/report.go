package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-sysinfo/pkg/sysinfo"
)

// maxReportWorkers bounds concurrent utility invocations during a report.
const maxReportWorkers = 4

// report is the combined view. Sections the platform does not support, or
// that failed, are omitted; failures are listed under Errors.
type report struct {
	Platform string `json:"platform"`
	Family   string `json:"family"`
	User     string `json:"user"`
	Computer string `json:"computer"`

	Host        *sysinfo.HostInfo           `json:"host,omitempty"`
	CPU         *sysinfo.CPUInfo            `json:"cpu,omitempty"`
	CPUIdle     *float64                    `json:"cpu_idle,omitempty"`
	Memory      *memorySection              `json:"memory,omitempty"`
	Load        []float64                   `json:"load,omitempty"`
	Free        *sysinfo.MemorySnapshot     `json:"free,omitempty"`
	Filesystem  *sysinfo.FilesystemSnapshot `json:"filesystem,omitempty"`
	Processes   []sysinfo.ProcessEntry      `json:"processes,omitempty"`
	Uptime      *sysinfo.UptimeStats        `json:"uptime,omitempty"`
	Workstation *sysinfo.WorkstationStats   `json:"workstation,omitempty"`
	Services    []string                    `json:"services,omitempty"`
	Motherboard *sysinfo.Motherboard        `json:"motherboard,omitempty"`

	Advisories []string          `json:"advisories,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

type memorySection struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
}

// gatherer fills one report from concurrent section readers.
type gatherer struct {
	client *sysinfo.Client
	unit   string

	mu  sync.Mutex
	rep report
}

func (g *gatherer) fail(section string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rep.Errors == nil {
		g.rep.Errors = make(map[string]string)
	}
	g.rep.Errors[section] = err.Error()
}

// section runs read and, on success, applies its result under the lock.
// Section failures are recorded, not returned, so one broken utility does
// not cancel the others.
func (g *gatherer) section(ctx context.Context, name string, read func(context.Context) (func(*report), error)) func() error {
	return func() error {
		apply, err := read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			g.fail(name, err)
			return nil
		}
		g.mu.Lock()
		apply(&g.rep)
		g.mu.Unlock()
		return nil
	}
}

func (g *gatherer) gather(ctx context.Context) (report, error) {
	c := g.client
	p := c.Platform()
	g.rep = report{
		Platform: p.String(),
		Family:   p.Family().String(),
		User:     c.Username(),
		Computer: c.ComputerName(),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxReportWorkers)

	eg.Go(g.section(ctx, "host", func(ctx context.Context) (func(*report), error) {
		h, err := c.Host(ctx)
		return func(r *report) { r.Host = &h }, err
	}))
	eg.Go(g.section(ctx, "cpu", func(ctx context.Context) (func(*report), error) {
		info, err := c.CPUInfo(ctx)
		return func(r *report) { r.CPU = &info }, err
	}))
	eg.Go(g.section(ctx, "cpu_idle", func(ctx context.Context) (func(*report), error) {
		idle, err := c.CPUUsage(ctx)
		return func(r *report) { r.CPUIdle = &idle }, err
	}))
	eg.Go(g.section(ctx, "memory", func(ctx context.Context) (func(*report), error) {
		total, err := c.TotalMemory(ctx)
		if err != nil {
			return nil, err
		}
		free, err := c.FreeMemory(ctx)
		return func(r *report) { r.Memory = &memorySection{Total: total, Free: free} }, err
	}))
	eg.Go(g.section(ctx, "load", func(ctx context.Context) (func(*report), error) {
		loads := make([]float64, 0, 3)
		for _, w := range []int{1, 5, 15} {
			v, err := c.LoadAverage(ctx, w)
			if err != nil {
				return nil, err
			}
			loads = append(loads, v)
		}
		return func(r *report) { r.Load = loads }, nil
	}))

	if c.Supports(sysinfo.CapFree) {
		eg.Go(g.section(ctx, "free", func(ctx context.Context) (func(*report), error) {
			snap, err := c.Free(ctx, g.unit)
			return func(r *report) { r.Free = &snap }, err
		}))
	}
	if c.Supports(sysinfo.CapFilesystem) {
		eg.Go(g.section(ctx, "filesystem", func(ctx context.Context) (func(*report), error) {
			fs, err := c.Filesystem(ctx)
			return func(r *report) { r.Filesystem = &fs }, err
		}))
	}
	if c.Supports(sysinfo.CapProcesses) {
		eg.Go(g.section(ctx, "processes", func(ctx context.Context) (func(*report), error) {
			procs, err := c.Processes(ctx, 0)
			return func(r *report) { r.Processes = procs }, err
		}))
	}
	if c.Supports(sysinfo.CapUptime) {
		eg.Go(g.section(ctx, "uptime", func(ctx context.Context) (func(*report), error) {
			u, err := c.UnixUptime(ctx)
			return func(r *report) { r.Uptime = &u }, err
		}))
	}
	if c.Supports(sysinfo.CapWorkstation) {
		eg.Go(g.section(ctx, "workstation", func(ctx context.Context) (func(*report), error) {
			s, err := c.WindowsWorkstation(ctx)
			return func(r *report) { r.Workstation = &s }, err
		}))
	}
	if c.Supports(sysinfo.CapServices) {
		eg.Go(g.section(ctx, "services", func(ctx context.Context) (func(*report), error) {
			s, err := c.WindowsServices(ctx)
			return func(r *report) { r.Services = s }, err
		}))
	}
	if c.Supports(sysinfo.CapMotherboard) {
		eg.Go(g.section(ctx, "motherboard", func(ctx context.Context) (func(*report), error) {
			m, err := c.Motherboard(ctx)
			return func(r *report) { r.Motherboard = &m }, err
		}))
	}

	if err := eg.Wait(); err != nil {
		return report{}, err
	}
	return g.rep, nil
}

func (e *env) reportAction(c *cli.Context) error {
	g := &gatherer{client: e.client, unit: e.cfg.FreeFlag}
	rep, err := g.gather(c.Context)
	if err != nil {
		return err
	}
	for _, a := range e.takeAdvisories() {
		rep.Advisories = append(rep.Advisories, a.String())
	}

	if c.Bool("json") {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return e.printReport(rep)
}

func (e *env) printReport(rep report) error {
	w := e.stdout

	printTitle(w, "System")
	rows := [][]string{
		{"Platform", rep.Platform},
		{"Family", rep.Family},
		{"User", rep.User},
		{"Computer", rep.Computer},
	}
	if rep.CPUIdle != nil {
		rows = append(rows, []string{"CPU idle", formatPercent(*rep.CPUIdle)})
	}
	if len(rep.Load) == 3 {
		rows = append(rows, []string{"Load", formatLoad(rep.Load[0]) + " " + formatLoad(rep.Load[1]) + " " + formatLoad(rep.Load[2])})
	}
	if err := printFields(w, rows); err != nil {
		return err
	}

	if rep.Host != nil {
		printTitle(w, "Host")
		if err := printFields(w, hostRows(*rep.Host)); err != nil {
			return err
		}
	}
	if rep.CPU != nil {
		printTitle(w, "CPU")
		if err := printFields(w, cpuRows(*rep.CPU)); err != nil {
			return err
		}
	}
	if rep.Memory != nil {
		printTitle(w, "Memory")
		if err := printFields(w, memoryRows(rep.Memory.Total, rep.Memory.Free)); err != nil {
			return err
		}
	}
	if rep.Free != nil {
		printTitle(w, "free")
		if err := printTable(w, freeHeader, [][]string{freeRow(*rep.Free)}); err != nil {
			return err
		}
	}
	if rep.Filesystem != nil {
		printTitle(w, "Filesystem")
		if err := printTable(w, filesystemHeader, [][]string{filesystemRow(*rep.Filesystem)}); err != nil {
			return err
		}
	}
	if len(rep.Processes) > 0 {
		printTitle(w, "Processes")
		header, prows := processTable(rep.Platform == sysinfo.Windows.String(), rep.Processes)
		if err := printTable(w, header, prows); err != nil {
			return err
		}
	}
	if rep.Uptime != nil {
		printTitle(w, "Uptime")
		if err := printFields(w, uptimeRows(*rep.Uptime)); err != nil {
			return err
		}
	}
	if rep.Workstation != nil {
		printTitle(w, "Workstation")
		if err := printFields(w, workstationRows(*rep.Workstation)); err != nil {
			return err
		}
	}
	if len(rep.Services) > 0 {
		printTitle(w, "Services")
		srows := make([][]string, 0, len(rep.Services))
		for _, s := range rep.Services {
			srows = append(srows, []string{s})
		}
		if err := printTable(w, []string{"NAME"}, srows); err != nil {
			return err
		}
	}
	if rep.Motherboard != nil {
		printTitle(w, "Motherboard")
		if err := printFields(w, motherboardRows(*rep.Motherboard)); err != nil {
			return err
		}
	}

	if len(rep.Errors) > 0 {
		printTitle(w, "Errors")
		names := make([]string, 0, len(rep.Errors))
		for name := range rep.Errors {
			names = append(names, name)
		}
		sort.Strings(names)
		erows := make([][]string, 0, len(names))
		for _, name := range names {
			erows = append(erows, []string{name, rep.Errors[name]})
		}
		if err := printTable(w, []string{"SECTION", "ERROR"}, erows); err != nil {
			return err
		}
	}
	for _, a := range rep.Advisories {
		fmt.Fprintln(e.stderr, pterm.FgYellow.Sprint("warning: ")+a)
	}
	return nil
}
