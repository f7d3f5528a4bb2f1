package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quotebox/internal/ports"
)

// Config contains configuration for the Redis store.
type Config struct {
	// Client is the Redis connection. Required.
	Client *goredis.Client

	// TTL is applied to every write. Zero stores keys without expiry.
	TTL time.Duration

	// Breaker guards calls to Redis. A zero MaxFailures disables it.
	Breaker BreakerConfig

	Logger *slog.Logger
}

// Store is a ports.KeyValueStore backed by Redis.
type Store struct {
	client  *goredis.Client
	ttl     time.Duration
	breaker *breaker
	logger  *slog.Logger
}

// New creates a Redis store.
func New(cfg Config) *Store {
	if cfg.Client == nil {
		panic("redis: Store requires a client")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "storage.redis"))

	ttl := cfg.TTL
	if ttl < 0 {
		ttl = 0
	}

	b := newBreaker(cfg.Breaker)
	b.onStateChange = func(from, to BreakerState) {
		logger.Warn("redis circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	}

	return &Store{
		client:  cfg.Client,
		ttl:     ttl,
		breaker: b,
		logger:  logger,
	}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		data    []byte
		missing bool
	)

	err := s.breaker.do(func() error {
		var err error

		data, err = s.client.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			missing = true

			return nil
		}

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	if missing {
		return nil, ports.ErrKeyNotFound
	}

	return data, nil
}

// Set overwrites the value stored under key and resets its TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	err := s.breaker.do(func() error {
		return s.client.Set(ctx, key, value, s.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.breaker.do(func() error {
		return s.client.Del(ctx, key).Err()
	})
	if err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}

	return nil
}

// BreakerState reports the breaker state.
func (s *Store) BreakerState() BreakerState {
	return s.breaker.State()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "redis"
}

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var (
	_ ports.KeyValueStore = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)
