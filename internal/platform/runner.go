package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommandTimeout bounds every utility invocation unless overridden.
const DefaultCommandTimeout = 5 * time.Second

// waitDelay bounds how long Run waits for the output pipes to close after the
// child is killed. A grandchild that inherited stdout would otherwise block
// Wait indefinitely.
const waitDelay = time.Second

// CommandRunner runs a platform utility and returns its standard output.
// This allows parsers to be exercised without spawning processes.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs utilities on the local host.
type ExecRunner struct {
	// Timeout is the deadline for a single command (0 disables it).
	Timeout time.Duration
}

// NewExecRunner creates an ExecRunner with the given timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run executes name with args in the C locale, since every parser expects
// untranslated headers and decimal points. The child process is always
// waited for, so it is reaped on success, failure and timeout alike.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmdline := commandLine(name, args...)

	if _, err := exec.LookPath(name); err != nil {
		return "", &CommandError{Command: cmdline, Err: fmt.Errorf("%w: %w", ErrCommandUnavailable, err)}
	}

	parent := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		// Only name the runner's own timeout when it is the one that fired.
		timeoutErr := ErrCommandTimeout
		if r.Timeout > 0 && parent.Err() == nil {
			timeoutErr = fmt.Errorf("%w after %v", ErrCommandTimeout, r.Timeout)
		}
		return "", &CommandError{Command: cmdline, Stderr: stderr.String(), Err: timeoutErr}
	case ctx.Err() != nil:
		return "", &CommandError{Command: cmdline, Stderr: stderr.String(), Err: ctx.Err()}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist):
		return "", &CommandError{Command: cmdline, Stderr: stderr.String(), Err: fmt.Errorf("%w: %w", ErrCommandUnavailable, err)}
	default:
		return "", &CommandError{Command: cmdline, Stderr: stderr.String(), Err: fmt.Errorf("command failed: %w", err)}
	}
}

// commandLine renders name and args for error messages and logs.
func commandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
