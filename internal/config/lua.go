package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser parses Lua configuration files. The file assigns a table
// to sysinfo.config:
//
//	sysinfo.config = {
//	    command_timeout = 2.5,     -- seconds, or a duration string like '2500ms'
//	    sample_window = '500ms',
//	    free_flag = 'gigabytes',
//	    process_limit = 15,
//	    no_color = false,
//	    log_level = 'debug',
//	    log_format = 'json',
//	}
//
// The chunk runs under CPU and memory limits.
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a parser with a fresh Lua runtime. Output from
// print() in the configuration is discarded.
func NewLuaConfigParser() *LuaConfigParser {
	runtime := rt.New(io.Discard)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}
}

// Parse executes the Lua chunk and reads sysinfo.config on top of the
// defaults.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024, // 50 MB
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	if _, err := rt.Call1(p.runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initGlobal installs an empty sysinfo.config table.
func (p *LuaConfigParser) initGlobal() {
	sysinfo := rt.NewTable()
	sysinfo.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("sysinfo"), rt.TableValue(sysinfo))
}

func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	sysinfoVal := p.runtime.GlobalEnv().Get(rt.StringValue("sysinfo"))
	if sysinfoVal == rt.NilValue {
		return &cfg, nil
	}
	sysinfo, ok := sysinfoVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("sysinfo is not a table")
	}

	configVal := sysinfo.Get(rt.StringValue("config"))
	if configVal == rt.NilValue {
		return &cfg, nil
	}
	table, ok := configVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("sysinfo.config is not a table")
	}

	if err := extractConfigTable(&cfg, table); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func extractConfigTable(cfg *Config, table *rt.Table) error {
	timeout, err := getTableDuration(table, "command_timeout")
	if err != nil {
		return err
	}
	if timeout != nil {
		cfg.CommandTimeout = *timeout
	}

	window, err := getTableDuration(table, "sample_window")
	if err != nil {
		return err
	}
	if window != nil {
		cfg.SampleWindow = *window
	}

	if val := getTableString(table, "free_flag"); val != nil {
		cfg.FreeFlag = *val
	}
	if val := getTableInt(table, "process_limit"); val != nil {
		cfg.ProcessLimit = *val
	}
	if val := getTableBool(table, "no_color"); val != nil {
		cfg.NoColor = *val
	}
	if val := getTableString(table, "log_level"); val != nil {
		cfg.Log.Level = *val
	}
	if val := getTableString(table, "log_format"); val != nil {
		cfg.Log.Format = *val
	}
	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}
	return nil
}

// getTableString retrieves a string value from a Lua table.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if s, ok := val.TryString(); ok {
		return &s
	}
	return nil
}

// getTableFloat retrieves a float64 value from a Lua table.
func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if n, ok := val.TryFloat(); ok {
		return &n
	}
	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}
	return nil
}

// getTableInt retrieves an int value from a Lua table; floats are truncated.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}
	return nil
}

// getTableDuration accepts a number of seconds or a Go duration string.
func getTableDuration(table *rt.Table, key string) (*time.Duration, error) {
	if s := getTableString(table, key); s != nil {
		d, err := parseDuration(*s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return &d, nil
	}
	if f := getTableFloat(table, key); f != nil {
		d := time.Duration(*f * float64(time.Second))
		return &d, nil
	}
	return nil, nil
}

// parseDuration parses a Go duration string after environment expansion.
// A bare number is taken as seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(ExpandEnv(s))
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if seconds, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
