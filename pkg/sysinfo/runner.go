package sysinfo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/opd-ai/go-sysinfo/internal/platform"
)

// instrumentedRunner logs and counts every utility invocation. When
// breakers is set, a utility that keeps failing is not spawned until its
// cool-down elapses.
type instrumentedRunner struct {
	next     platform.CommandRunner
	logger   Logger
	metrics  *Metrics
	breakers *breakerSet
}

func (r *instrumentedRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	var b *breaker
	if r.breakers != nil {
		b = r.breakers.get(name)
		if !b.allow() {
			r.metrics.IncrementRejections()
			r.logger.Debug("command skipped", "command", name, "breaker", BreakerOpen.String())
			return "", breakerOpen(name)
		}
	}

	start := time.Now()
	out, err := r.next.Run(ctx, name, args...)
	elapsed := time.Since(start)

	if b != nil {
		if err != nil && ctx.Err() != nil {
			b.abandon()
		} else {
			b.record(err)
		}
	}

	r.metrics.RecordCommand(elapsed, err != nil, errors.Is(err, platform.ErrCommandTimeout))

	cmd := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if err != nil {
		r.logger.Debug("command failed", "command", cmd, "duration", elapsed, "error", err)
		return "", err
	}
	r.logger.Debug("command completed", "command", cmd, "duration", elapsed, "bytes", len(out))
	return out, nil
}
