package config

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Format identifies a configuration file syntax.
type Format string

const (
	FormatLua  Format = "lua"
	FormatYAML Format = "yaml"
)

// Parser reads Lua or YAML configuration files.
type Parser struct {
	luaParser *LuaConfigParser
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{luaParser: NewLuaConfigParser()}
}

// luaConfigPattern matches "sysinfo.config =" at the start of a line.
var luaConfigPattern = regexp.MustCompile(`(?m)^\s*sysinfo\.config\s*=`)

// DetectFormat picks the syntax from the file extension, falling back to
// content sniffing for other names.
func DetectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return FormatLua
	case ".yaml", ".yml":
		return FormatYAML
	}
	if luaConfigPattern.Match(content) {
		return FormatLua
	}
	return FormatYAML
}

// ParseFile reads and parses a configuration file.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return p.Parse(DetectFormat(path, content), content)
}

// ParseFromFS reads and parses a configuration file from fsys.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}
	return p.Parse(DetectFormat(path, content), content)
}

// ParseReader parses configuration from r in the given format.
func (p *Parser) ParseReader(r io.Reader, format Format) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return p.Parse(format, content)
}

// Parse parses content in the given format.
func (p *Parser) Parse(format Format, content []byte) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch format {
	case FormatLua:
		cfg, err = p.luaParser.Parse(content)
	case FormatYAML:
		if len(bytes.TrimSpace(content)) == 0 {
			def := DefaultConfig()
			return &def, nil
		}
		cfg, err = ParseYAML(content)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'lua' or 'yaml')", format)
	}
	if err != nil {
		return nil, err
	}

	ExpandEnvConfig(cfg)
	return cfg, nil
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}

// Load parses and validates the file at path. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		return &cfg, nil
	}

	p := NewParser()
	defer p.Close()

	cfg, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
