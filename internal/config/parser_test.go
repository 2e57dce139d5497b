package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		content string
		want    Format
	}{
		{"sysinfo.lua", "", FormatLua},
		{"sysinfo.YAML", "", FormatYAML},
		{"sysinfo.yml", "sysinfo.config = {}", FormatYAML},
		{"sysinforc", "-- settings\nsysinfo.config = {}\n", FormatLua},
		{"sysinforc", "process_limit: 4\n", FormatYAML},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.path, []byte(tt.content)); got != tt.want {
			t.Errorf("DetectFormat(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestParserParseFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a.lua":  {Data: []byte(`sysinfo.config = { free_flag = '${SYSINFO_TEST_FLAG:-bytes}' }`)},
		"b.yaml": {Data: []byte("free_flag: petabytes\n")},
		"empty":  {Data: []byte("\n")},
	}

	p := NewParser()
	defer p.Close()

	lua, err := p.ParseFromFS(fsys, "a.lua")
	if err != nil {
		t.Fatalf("lua: %v", err)
	}
	if lua.FreeFlag != "bytes" {
		t.Errorf("env default should be expanded, got %q", lua.FreeFlag)
	}

	yml, err := p.ParseFromFS(fsys, "b.yaml")
	if err != nil || yml.FreeFlag != "petabytes" {
		t.Errorf("yaml: %+v, %v", yml, err)
	}

	empty, err := p.ParseFromFS(fsys, "empty")
	if err != nil || *empty != DefaultConfig() {
		t.Errorf("empty: %+v, %v", empty, err)
	}

	if _, err := p.ParseFromFS(fsys, "missing.lua"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParserParseReader(t *testing.T) {
	p := NewParser()
	defer p.Close()

	cfg, err := p.ParseReader(strings.NewReader("sample_window: 100ms\n"), FormatYAML)
	if err != nil || cfg.SampleWindow != 100*time.Millisecond {
		t.Errorf("ParseReader = %+v, %v", cfg, err)
	}

	if _, err := p.ParseReader(strings.NewReader(""), Format("toml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "sysinfo.lua")
	if err := os.WriteFile(good, []byte(`sysinfo.config = { process_limit = 4 }`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(good)
	if err != nil || cfg.ProcessLimit != 4 {
		t.Fatalf("Load = %+v, %v", cfg, err)
	}

	bad := filepath.Join(dir, "sysinfo.yaml")
	if err := os.WriteFile(bad, []byte("log:\n  format: xml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "log_format") {
		t.Errorf("Load should reject invalid values, got %v", err)
	}

	def, err := Load("")
	if err != nil || *def != DefaultConfig() {
		t.Errorf("Load(\"\") = %+v, %v", def, err)
	}
}
