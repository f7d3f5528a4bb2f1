package redis

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without contacting Redis while the breaker is open.
var ErrCircuitOpen = errors.New("redis circuit breaker open")

// BreakerState is the state of the breaker guarding Redis calls.
type BreakerState int

const (
	// BreakerClosed lets every call through.
	BreakerClosed BreakerState = iota

	// BreakerOpen rejects calls until the cool-down has passed.
	BreakerOpen

	// BreakerHalfOpen lets a limited number of probe calls through.
	BreakerHalfOpen
)

// String returns a human-readable name for the state.
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

// BreakerConfig configures the breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	// Zero disables the breaker.
	MaxFailures int

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// HalfOpenLimit is the number of consecutive probe successes that closes
	// the breaker, and the number of probes allowed in flight.
	HalfOpenLimit int
}

// breaker stops calling Redis after repeated failures so a dead session
// backend costs one fast error per request instead of a dial timeout.
//
// State transitions:
//   - Closed → Open: after MaxFailures consecutive failures
//   - Open → HalfOpen: after Timeout has passed
//   - HalfOpen → Closed: after HalfOpenLimit consecutive successes
//   - HalfOpen → Open: on any failure
type breaker struct {
	mu          sync.Mutex
	state       BreakerState
	failures    int
	successes   int
	probes      int
	lastFailure time.Time
	cfg         BreakerConfig

	onStateChange func(from, to BreakerState)
	now           func() time.Time
}

func newBreaker(cfg BreakerConfig) *breaker {
	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}

	return &breaker{
		state: BreakerClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// do runs fn if the breaker allows it and records the outcome.
func (b *breaker) do(fn func() error) error {
	if b.cfg.MaxFailures <= 0 {
		return fn()
	}

	if !b.allow() {
		return ErrCircuitOpen
	}

	err := fn()
	if err != nil {
		b.recordFailure()
	} else {
		b.recordSuccess()
	}

	return err
}

func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return true

	case BreakerOpen:
		if b.now().Sub(b.lastFailure) >= b.cfg.Timeout {
			b.transitionTo(BreakerHalfOpen)
			b.probes = 1

			return true
		}

		return false

	case BreakerHalfOpen:
		if b.probes >= b.cfg.HalfOpenLimit {
			return false
		}

		b.probes++

		return true

	default:
		return false
	}
}

func (b *breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures = 0

	case BreakerHalfOpen:
		b.probes--
		b.successes++

		if b.successes >= b.cfg.HalfOpenLimit {
			b.transitionTo(BreakerClosed)
		}
	}
}

func (b *breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailure = b.now()

	switch b.state {
	case BreakerClosed:
		b.failures++

		if b.failures >= b.cfg.MaxFailures {
			b.transitionTo(BreakerOpen)
		}

	case BreakerHalfOpen:
		b.probes--
		b.transitionTo(BreakerOpen)
	}
}

func (b *breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// transitionTo changes state. Must be called with b.mu held.
func (b *breaker) transitionTo(next BreakerState) {
	if b.state == next {
		return
	}

	prev := b.state
	b.state = next
	b.failures = 0
	b.successes = 0

	if b.onStateChange != nil {
		go b.onStateChange(prev, next)
	}
}
