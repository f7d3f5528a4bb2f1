package redis

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func fail() error    { return errBoom }
func succeed() error { return nil }

func newTestBreaker(cfg BreakerConfig) (*breaker, *time.Time) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newBreaker(cfg)
	b.now = func() time.Time { return now }

	return b, &now
}

func TestBreaker_InitialState(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{MaxFailures: 3, Timeout: time.Second, HalfOpenLimit: 1})

	assert.Equal(t, BreakerClosed, b.State())
	require.NoError(t, b.do(succeed))
}

func TestBreaker_ClosedToOpen(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{MaxFailures: 3, Timeout: time.Second, HalfOpenLimit: 1})

	require.ErrorIs(t, b.do(fail), errBoom)
	require.ErrorIs(t, b.do(fail), errBoom)
	assert.Equal(t, BreakerClosed, b.State())

	require.ErrorIs(t, b.do(fail), errBoom)
	assert.Equal(t, BreakerOpen, b.State())

	called := false
	err := b.do(func() error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{MaxFailures: 2, Timeout: time.Second, HalfOpenLimit: 1})

	_ = b.do(fail)
	require.NoError(t, b.do(succeed))
	_ = b.do(fail)

	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	tests := []struct {
		name     string
		probe    func() error
		expected BreakerState
	}{
		{name: "probe success closes", probe: succeed, expected: BreakerClosed},
		{name: "probe failure reopens", probe: fail, expected: BreakerOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, now := newTestBreaker(BreakerConfig{MaxFailures: 1, Timeout: 10 * time.Second, HalfOpenLimit: 1})

			_ = b.do(fail)
			require.Equal(t, BreakerOpen, b.State())

			*now = now.Add(5 * time.Second)
			require.ErrorIs(t, b.do(succeed), ErrCircuitOpen)

			*now = now.Add(5 * time.Second)
			_ = b.do(tt.probe)

			assert.Equal(t, tt.expected, b.State())
		})
	}
}

func TestBreaker_DisabledWithZeroMaxFailures(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{})

	for range 10 {
		require.ErrorIs(t, b.do(fail), errBoom)
	}

	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_OnStateChange(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{MaxFailures: 1, Timeout: time.Second, HalfOpenLimit: 1})

	var (
		mu          sync.Mutex
		transitions []string
	)

	done := make(chan struct{})
	b.onStateChange = func(from, to BreakerState) {
		mu.Lock()
		transitions = append(transitions, from.String()+"->"+to.String())
		mu.Unlock()
		close(done)
	}

	_ = b.do(fail)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("state change callback not called")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestBreakerState_String(t *testing.T) {
	tests := []struct {
		state    BreakerState
		expected string
	}{
		{BreakerClosed, "closed"},
		{BreakerOpen, "open"},
		{BreakerHalfOpen, "half-open"},
		{BreakerState(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
