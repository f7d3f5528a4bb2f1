package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotebox/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage/redis"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotebox/internal/platform/config"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

const maxSweepInterval = 5 * time.Minute

// storeSet holds the two stores the widget runs on.
type storeSet struct {
	durable  ports.KeyValueStore
	session  ports.KeyValueStore
	checkers []ports.HealthChecker
	closers  []func() error
}

// openStores opens the SQLite collection store and the configured session store.
func openStores(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (*storeSet, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Durable.Path, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("opening quote database: %w", err)
	}

	set := &storeSet{
		durable:  db,
		checkers: []ports.HealthChecker{db},
		closers:  []func() error{db.Close},
	}

	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		client := redis.NewClient(redis.ClientConfig{
			URL:      cfg.Session.Redis.URL,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})

		store := redis.New(redis.Config{
			Client: client,
			TTL:    cfg.Session.TTL,
			Breaker: redis.BreakerConfig{
				MaxFailures:   cfg.Session.CircuitBreaker.MaxFailures,
				Timeout:       cfg.Session.CircuitBreaker.Timeout,
				HalfOpenLimit: cfg.Session.CircuitBreaker.HalfOpenLimit,
			},
			Logger: logger,
		})

		set.session = store
		set.checkers = append(set.checkers, store)
		set.closers = append(set.closers, client.Close)
	default:
		store := memory.New(memory.WithTTL(cfg.Session.TTL))

		if cfg.Session.TTL > 0 {
			sweepCtx, stop := context.WithCancel(context.Background())
			go store.RunSweeper(sweepCtx, sweepInterval(cfg.Session.TTL))

			set.closers = append(set.closers, func() error {
				stop()
				return nil
			})
		}

		set.session = store
	}

	logger.Info("stores opened",
		slog.String("durable", cfg.Durable.Path),
		slog.String("session", cfg.Session.Driver),
	)

	return set, nil
}

// sweepInterval bounds how long expired sessions stay in memory past their TTL.
func sweepInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Second), maxSweepInterval)
}

// Close releases every store, logging failures.
func (s *storeSet) Close(logger *slog.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Error("closing store", slog.Any("error", err))
		}
	}
}
