package config

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// yamlConfig mirrors the Lua keys. Durations are strings ("500ms") or bare
// seconds; absent keys keep their defaults.
type yamlConfig struct {
	CommandTimeout *string `yaml:"command_timeout"`
	SampleWindow   *string `yaml:"sample_window"`
	FreeFlag       *string `yaml:"free_flag"`
	ProcessLimit   *int    `yaml:"process_limit"`
	NoColor        *bool   `yaml:"no_color"`
	Log            struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
}

// ParseYAML parses a YAML configuration on top of the defaults:
//
//	command_timeout: 2s
//	sample_window: 500ms
//	free_flag: gigabytes
//	process_limit: 15
//	log:
//	  level: debug
//	  format: json
func ParseYAML(content []byte) (*Config, error) {
	var raw yamlConfig
	if err := yaml.UnmarshalStrict(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	cfg := DefaultConfig()
	if raw.CommandTimeout != nil {
		d, err := parseDuration(*raw.CommandTimeout)
		if err != nil {
			return nil, fmt.Errorf("command_timeout: %w", err)
		}
		cfg.CommandTimeout = d
	}
	if raw.SampleWindow != nil {
		d, err := parseDuration(*raw.SampleWindow)
		if err != nil {
			return nil, fmt.Errorf("sample_window: %w", err)
		}
		cfg.SampleWindow = d
	}
	if raw.FreeFlag != nil {
		cfg.FreeFlag = *raw.FreeFlag
	}
	if raw.ProcessLimit != nil {
		cfg.ProcessLimit = *raw.ProcessLimit
	}
	if raw.NoColor != nil {
		cfg.NoColor = *raw.NoColor
	}
	if raw.Log.Level != nil {
		cfg.Log.Level = *raw.Log.Level
	}
	if raw.Log.Format != nil {
		cfg.Log.Format = *raw.Log.Format
	}
	return &cfg, nil
}
