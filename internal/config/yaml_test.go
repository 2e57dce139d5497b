package config

import (
	"testing"
	"time"
)

func TestParseYAML(t *testing.T) {
	content := `
command_timeout: 2s
sample_window: 0.25
free_flag: terabytes
process_limit: 7
no_color: true
log:
  level: warn
  format: json
`
	cfg, err := ParseYAML([]byte(content))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	want := Config{
		CommandTimeout: 2 * time.Second,
		SampleWindow:   250 * time.Millisecond,
		FreeFlag:       "terabytes",
		ProcessLimit:   7,
		NoColor:        true,
		Log:            LogConfig{Level: "warn", Format: "json"},
	}
	if *cfg != want {
		t.Errorf("got %+v\nwant %+v", *cfg, want)
	}
}

func TestParseYAMLPartial(t *testing.T) {
	cfg, err := ParseYAML([]byte("process_limit: 0\n"))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if cfg.ProcessLimit != 0 {
		t.Errorf("explicit zero should be kept, got %d", cfg.ProcessLimit)
	}
	if cfg.SampleWindow != DefaultSampleWindow || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key":  "refresh: 1s\n",
		"bad duration": "command_timeout: eventually\n",
		"bad type":     "process_limit: many\n",
		"not yaml":     "command_timeout: [1, 2\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
