package ports

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name  string
	err   error
	delay time.Duration
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return s.err
}

func TestRegister(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "sqlite"}))
	require.NoError(t, registry.Register(&stubChecker{name: "redis"}))

	err := registry.Register(&stubChecker{name: "sqlite"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "sqlite")
	assert.Len(t, registry.checkers, 2)
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []HealthChecker
		wantStatus HealthStatus
		wantFailed map[string]string
	}{
		{
			name:       "no checkers",
			wantStatus: HealthStatusHealthy,
		},
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "sqlite"},
				&stubChecker{name: "redis"},
			},
			wantStatus: HealthStatusHealthy,
		},
		{
			name: "one unhealthy",
			checkers: []HealthChecker{
				&stubChecker{name: "sqlite"},
				&stubChecker{name: "redis", err: errors.New("connection refused")},
			},
			wantStatus: HealthStatusUnhealthy,
			wantFailed: map[string]string{"redis": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Len(t, result.Checks, len(tt.checkers))
			assert.False(t, result.Timestamp.IsZero())

			for name, check := range result.Checks {
				if msg, failed := tt.wantFailed[name]; failed {
					assert.Equal(t, HealthStatusUnhealthy, check.Status)
					assert.Equal(t, msg, check.Message)

					continue
				}

				assert.Equal(t, HealthStatusHealthy, check.Status)
				assert.Empty(t, check.Message)
			}
		})
	}
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&stubChecker{name: "slow", delay: time.Minute}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow"].Message, "context canceled")
}

type countingChecker struct {
	name    string
	running *atomic.Int32
	peak    *atomic.Int32
}

func (c *countingChecker) Name() string { return c.name }

func (c *countingChecker) Check(context.Context) error {
	n := c.running.Add(1)
	defer c.running.Add(-1)

	for {
		peak := c.peak.Load()
		if n <= peak || c.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	time.Sleep(5 * time.Millisecond)

	return nil
}

func TestCheckAll_BoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32

	registry := NewHealthRegistry()
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		require.NoError(t, registry.Register(&countingChecker{name: name, running: &running, peak: &peak}))
	}

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Len(t, result.Checks, 8)
	assert.LessOrEqual(t, peak.Load(), int32(maxConcurrentChecks))
}
