package sysinfo

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// BreakerState is the state of one utility's breaker.
type BreakerState int

const (
	// BreakerClosed lets invocations through.
	BreakerClosed BreakerState = iota
	// BreakerOpen refuses invocations until the cool-down elapses.
	BreakerOpen
	// BreakerHalfOpen lets a single probe through.
	BreakerHalfOpen
)

// String returns the state name.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned, wrapped with the utility name, when a utility
// failed too often and is temporarily not spawned.
var ErrBreakerOpen = errors.New("utility breaker is open")

// BreakerConfig enables per-utility breakers. A missing utility then costs
// one failed spawn per cool-down instead of one per call.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the
	// breaker. Default: 3
	FailureThreshold int
	// CoolDown is how long an open breaker refuses invocations.
	// Default: 30 seconds
	CoolDown time.Duration
}

// DefaultBreakerConfig returns the default thresholds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 3, CoolDown: 30 * time.Second}
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	d := DefaultBreakerConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.CoolDown <= 0 {
		c.CoolDown = d.CoolDown
	}
	return c
}

// breaker tracks consecutive failures of one utility.
type breaker struct {
	cfg BreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	probing  bool
}

// allow reports whether an invocation may proceed. An open breaker whose
// cool-down elapsed admits exactly one probe.
func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerOpen:
		if b.now().Sub(b.openedAt) < b.cfg.CoolDown {
			return false
		}
		b.state = BreakerHalfOpen
		b.probing = true
		return true
	case BreakerHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	default:
		return true
	}
}

func (b *breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	if err == nil {
		b.state = BreakerClosed
		b.failures = 0
		return
	}

	b.failures++
	if b.state == BreakerHalfOpen || b.failures >= b.cfg.FailureThreshold {
		b.state = BreakerOpen
		b.openedAt = b.now()
	}
}

// abandon releases a probe whose outcome says nothing about the utility,
// such as a cancelled context.
func (b *breaker) abandon() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
}

func (b *breaker) current() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// breakerSet holds one breaker per utility name.
type breakerSet struct {
	cfg BreakerConfig
	now func() time.Time

	mu       sync.Mutex
	breakers map[string]*breaker
}

func newBreakerSet(cfg BreakerConfig) *breakerSet {
	return &breakerSet{cfg: cfg.withDefaults(), now: time.Now, breakers: make(map[string]*breaker)}
}

func (s *breakerSet) get(name string) *breaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.breakers[name]
	if !ok {
		b = &breaker{cfg: s.cfg, now: s.now}
		s.breakers[name] = b
	}
	return b
}

// state returns the breaker state for a utility; unknown names are closed.
func (s *breakerSet) state(name string) BreakerState {
	s.mu.Lock()
	b, ok := s.breakers[name]
	s.mu.Unlock()
	if !ok {
		return BreakerClosed
	}
	return b.current()
}

func breakerOpen(name string) error {
	return fmt.Errorf("%s: %w", name, ErrBreakerOpen)
}
