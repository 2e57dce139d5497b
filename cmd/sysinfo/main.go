// Package main provides the sysinfo command, a thin terminal front end over
// the sysinfo library.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/opd-ai/go-sysinfo/pkg/sysinfo"
)

// Version is the current version of the sysinfo command.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.3.0-dev"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(newEnv(stdout, stderr, sysinfo.New))
	if err := app.RunContext(ctx, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      "sysinfo",
		Usage:     "Report CPU, memory, disk, process and host telemetry",
		Version:   Version,
		Writer:    e.stdout,
		ErrWriter: e.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Lua or YAML configuration file",
				EnvVars: []string{"SYSINFO_CONFIG"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Per-command timeout (0 disables)",
				EnvVars: []string{"SYSINFO_TIMEOUT"},
			},
			&cli.DurationFlag{
				Name:    "sample-window",
				Usage:   "Pause between the two CPU samples",
				EnvVars: []string{"SYSINFO_SAMPLE_WINDOW"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"SYSINFO_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				EnvVars: []string{"SYSINFO_LOG_FORMAT"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Shorthand for --log-level debug",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable styled output",
				EnvVars: []string{"SYSINFO_NO_COLOR", "NO_COLOR"},
			},
			&cli.StringFlag{
				Name:  "cpuprofile",
				Usage: "Write a CPU profile to file",
			},
			&cli.StringFlag{
				Name:  "memprofile",
				Usage: "Write a heap profile to file",
			},
		},
		Before:   e.setup,
		After:    e.teardown,
		Commands: e.commands(),
	}
}
