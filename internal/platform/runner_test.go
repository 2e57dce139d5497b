package platform

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// mockRunner is a CommandRunner that answers from canned output keyed by the
// full command line.
type mockRunner struct {
	results map[string]string
	errs    map[string]error
	calls   []string
	mu      sync.Mutex
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		results: make(map[string]string),
		errs:    make(map[string]error),
	}
}

func (m *mockRunner) setCommandResult(cmd, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[cmd] = result
}

func (m *mockRunner) setCommandError(cmd string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[cmd] = err
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := commandLine(name, args...)
	m.calls = append(m.calls, cmd)
	if err, ok := m.errs[cmd]; ok {
		return "", err
	}
	if result, ok := m.results[cmd]; ok {
		return result, nil
	}
	return "", errors.New("command not mocked: " + cmd)
}

func TestExecRunner_Unavailable(t *testing.T) {
	r := NewExecRunner(time.Second)
	_, err := r.Run(context.Background(), "sysinfo-no-such-utility-7f3a")
	if !errors.Is(err, ErrCommandUnavailable) {
		t.Fatalf("expected ErrCommandUnavailable, got %v", err)
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T", err)
	}
	if cmdErr.Command != "sysinfo-no-such-utility-7f3a" {
		t.Errorf("Command = %q", cmdErr.Command)
	}
}

func TestExecRunner_Output(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("echo is a shell builtin on Windows")
	}
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	out, err := NewExecRunner(DefaultCommandTimeout).Run(context.Background(), "echo", "hello", "world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "hello world" {
		t.Errorf("output = %q", out)
	}
}

func TestExecRunner_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no sleep utility on Windows")
	}
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	start := time.Now()
	_, err := NewExecRunner(50*time.Millisecond).Run(context.Background(), "sleep", "5")
	if !errors.Is(err, ErrCommandTimeout) {
		t.Fatalf("expected ErrCommandTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("runner did not stop the child in time: %v", elapsed)
	}
}

func TestExecRunner_ParentDeadline(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no sleep utility on Windows")
	}
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewExecRunner(0).Run(ctx, "sleep", "5")
	if !errors.Is(err, ErrCommandTimeout) {
		t.Fatalf("expected ErrCommandTimeout, got %v", err)
	}
	if strings.Contains(err.Error(), "after") {
		t.Errorf("caller deadline reported as runner timeout: %v", err)
	}
}

func TestExecRunner_TimeoutWithLingeringGrandchild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no POSIX shell on Windows")
	}
	for _, tool := range []string{"sh", "sleep"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skip(tool + " not available")
		}
	}

	start := time.Now()
	_, err := NewExecRunner(50*time.Millisecond).Run(context.Background(), "sh", "-c", "sleep 5 & sleep 5")
	if !errors.Is(err, ErrCommandTimeout) {
		t.Fatalf("expected ErrCommandTimeout, got %v", err)
	}
	if !strings.Contains(err.Error(), "after 50ms") {
		t.Errorf("runner timeout not named: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("stdout held by a grandchild blocked Run for %v", elapsed)
	}
}

func TestExecRunner_CLocale(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no POSIX shell on Windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	t.Setenv("LANG", "de_DE.UTF-8")

	out, err := NewExecRunner(DefaultCommandTimeout).Run(context.Background(), "sh", "-c", "echo $LC_ALL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "C" {
		t.Errorf("child LC_ALL = %q, want C", got)
	}
}

func TestExecRunner_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no false utility on Windows")
	}
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}

	_, err := NewExecRunner(time.Second).Run(context.Background(), "false")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if errors.Is(err, ErrCommandUnavailable) || errors.Is(err, ErrCommandTimeout) {
		t.Errorf("non-zero exit misclassified: %v", err)
	}
}

func TestCommandLine(t *testing.T) {
	if got := commandLine("uptime"); got != "uptime" {
		t.Errorf("commandLine(uptime) = %q", got)
	}
	if got := commandLine("df", "-h", "-T", "."); got != "df -h -T ." {
		t.Errorf("commandLine(df) = %q", got)
	}
}
