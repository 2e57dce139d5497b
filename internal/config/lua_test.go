package config

import (
	"strings"
	"testing"
	"time"
)

func TestLuaConfigParserParse(t *testing.T) {
	p := NewLuaConfigParser()
	defer p.Close()

	content := `
sysinfo.config = {
    command_timeout = 2.5,
    sample_window = '500ms',
    free_flag = 'gigabytes',
    process_limit = 15,
    no_color = true,
    log_level = 'debug',
    log_format = 'json',
}
`
	cfg, err := p.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.CommandTimeout != 2500*time.Millisecond {
		t.Errorf("CommandTimeout = %v", cfg.CommandTimeout)
	}
	if cfg.SampleWindow != 500*time.Millisecond {
		t.Errorf("SampleWindow = %v", cfg.SampleWindow)
	}
	if cfg.FreeFlag != "gigabytes" || cfg.ProcessLimit != 15 || !cfg.NoColor {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLuaConfigParserDefaults(t *testing.T) {
	p := NewLuaConfigParser()
	defer p.Close()

	cfg, err := p.Parse([]byte(`sysinfo.config = { process_limit = 3 }`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.ProcessLimit != 3 {
		t.Errorf("ProcessLimit = %d", cfg.ProcessLimit)
	}
	if cfg.CommandTimeout != DefaultCommandTimeout || cfg.FreeFlag != DefaultFreeFlag {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}

	empty, err := p.Parse([]byte(`-- nothing here`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if *empty != DefaultConfig() {
		t.Errorf("empty chunk = %+v", empty)
	}
}

func TestLuaConfigParserComputedValues(t *testing.T) {
	p := NewLuaConfigParser()
	defer p.Close()

	content := `
local base = 5
sysinfo.config = {
    process_limit = base * 4,
    free_flag = string.lower('KILOBYTES'),
}
`
	cfg, err := p.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.ProcessLimit != 20 || cfg.FreeFlag != "kilobytes" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLuaConfigParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `sysinfo.config = {`, "compile"},
		{"runtime", `error('boom')`, "execute"},
		{"bad duration", `sysinfo.config = { sample_window = 'soon' }`, "sample_window"},
		{"config not a table", `sysinfo.config = 42`, "not a table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLuaConfigParser()
			defer p.Close()

			_, err := p.Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Setenv("SYSINFO_TEST_TIMEOUT", "750ms")

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"2s", 2 * time.Second, false},
		{"1.5", 1500 * time.Millisecond, false},
		{"0", 0, false},
		{"${SYSINFO_TEST_TIMEOUT}", 750 * time.Millisecond, false},
		{"${SYSINFO_TEST_UNSET:-3s}", 3 * time.Second, false},
		{"later", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDuration(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
