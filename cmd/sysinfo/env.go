package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/opd-ai/go-sysinfo/internal/config"
	"github.com/opd-ai/go-sysinfo/internal/profiling"
	"github.com/opd-ai/go-sysinfo/pkg/sysinfo"
)

// clientFactory builds the library client from resolved options. Tests
// substitute one that injects a fake runner and native reader.
type clientFactory func(opts *sysinfo.Options) *sysinfo.Client

// env is the state shared by every command of one CLI run.
type env struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory

	cfg      *config.Config
	logger   sysinfo.Logger
	client   *sysinfo.Client
	profiler *profiling.Session

	mu         sync.Mutex
	advisories []sysinfo.Advisory
}

func newEnv(stdout, stderr io.Writer, factory clientFactory) *env {
	return &env{stdout: stdout, stderr: stderr, newClient: factory}
}

// setup loads the configuration, applies flag overrides and builds the
// client. Flags win over the file, the file wins over defaults.
func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)
	result := cfg.Check()
	if err := result.Error(); err != nil {
		return err
	}
	e.cfg = cfg

	if cfg.NoColor {
		pterm.DisableStyling()
	} else {
		pterm.EnableStyling()
	}

	e.logger = sysinfo.NewLogger(e.stderr, sysinfo.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	for _, w := range result.Warnings {
		e.logger.Warn("config", "field", w.Field, "message", w.Message)
	}

	prof := profiling.Config{
		CPUProfilePath: c.String("cpuprofile"),
		MemProfilePath: c.String("memprofile"),
	}
	if prof.Enabled() {
		e.profiler = profiling.New(prof)
		if err := e.profiler.Start(); err != nil {
			e.profiler = nil
			return fmt.Errorf("starting profiler: %w", err)
		}
	}

	e.client = e.newClient(&sysinfo.Options{
		Logger:         e.logger,
		CommandTimeout: clientTimeout(cfg),
		SampleWindow:   cfg.SampleWindow,
		ProcessLimit:   cfg.ProcessLimit,
		Metrics:        sysinfo.NewMetrics(),
		OnAdvisory:     e.recordAdvisory,
	})
	return nil
}

// teardown stops profiling and traces runtime and command counters.
func (e *env) teardown(c *cli.Context) error {
	if e.logger != nil && e.client != nil {
		m := e.client.Metrics().Snapshot()
		e.logger.Debug("run finished",
			"commands", m.Commands,
			"failures", m.CommandFailures,
			"parse_failures", m.ParseFailures,
			"advisories", m.Advisories)
		e.logger.Debug("runtime", profiling.ReadRuntimeStats().LogArgs()...)
	}

	if e.profiler == nil {
		return nil
	}
	if e.logger != nil {
		e.logger.Debug("profiling stopped", "elapsed", e.profiler.Elapsed())
	}
	return e.profiler.Stop()
}

func (e *env) recordAdvisory(a sysinfo.Advisory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advisories = append(e.advisories, a)
}

// takeAdvisories returns the advisories raised so far and clears them.
func (e *env) takeAdvisories() []sysinfo.Advisory {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.advisories
	e.advisories = nil
	return out
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("timeout") {
		cfg.CommandTimeout = c.Duration("timeout")
	}
	if c.IsSet("sample-window") {
		cfg.SampleWindow = c.Duration("sample-window")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}
	if c.IsSet("no-color") {
		cfg.NoColor = c.Bool("no-color")
	}
}

// clientTimeout maps the config convention (zero disables) onto the
// library's (negative disables).
func clientTimeout(cfg *config.Config) time.Duration {
	if cfg.CommandTimeout == 0 {
		return -1
	}
	return cfg.CommandTimeout
}
