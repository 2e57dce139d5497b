package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	result := DefaultConfig().Check()
	if !result.IsValid() || len(result.Warnings) != 0 {
		t.Errorf("defaults should validate cleanly: %+v", result)
	}
}

func TestConfigCheck(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     string
		wantWarning string
	}{
		{"negative timeout", func(c *Config) { c.CommandTimeout = -time.Second }, "command_timeout", ""},
		{"no timeout", func(c *Config) { c.CommandTimeout = 0 }, "", "command_timeout"},
		{"zero window", func(c *Config) { c.SampleWindow = 0 }, "sample_window", ""},
		{"long window", func(c *Config) { c.SampleWindow = 2 * time.Minute }, "", "sample_window"},
		{"unknown flag", func(c *Config) { c.FreeFlag = "exabytes" }, "", "free_flag"},
		{"negative limit", func(c *Config) { c.ProcessLimit = -1 }, "process_limit", ""},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log_level", ""},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log_format", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			result := cfg.Check()

			if tt.wantErr != "" {
				err := cfg.Validate()
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Validate() = %v, want mention of %s", err, tt.wantErr)
				}
			} else if !result.IsValid() {
				t.Errorf("unexpected errors: %v", result.Error())
			}

			if tt.wantWarning != "" {
				if len(result.Warnings) != 1 || result.Warnings[0].Field != tt.wantWarning {
					t.Errorf("warnings = %+v", result.Warnings)
				}
			}
		})
	}
}
