package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

// Storage keys used by the bridge.
const (
	QuotesKey    = "quotes"
	LastQuoteKey = "lastQuote"
)

// StorageBridge serializes the quote collection to the durable store and the
// last shown quote to a session store.
type StorageBridge struct {
	durable ports.KeyValueStore
	seed    domain.Collection
	logger  *slog.Logger
}

// StorageBridgeConfig contains configuration for the storage bridge.
type StorageBridgeConfig struct {
	// Durable holds the collection across restarts. Required.
	Durable ports.KeyValueStore

	// Seed is returned by Load when nothing usable is stored.
	// Nil means domain.DefaultQuotes().
	Seed domain.Collection

	Logger *slog.Logger
}

// NewStorageBridge creates a storage bridge.
func NewStorageBridge(cfg StorageBridgeConfig) *StorageBridge {
	if cfg.Durable == nil {
		panic("app: StorageBridge requires a durable store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seed := cfg.Seed
	if seed == nil {
		seed = domain.DefaultQuotes()
	}

	return &StorageBridge{
		durable: cfg.Durable,
		seed:    seed.Clone(),
		logger:  logger.With(slog.String("component", "app.StorageBridge")),
	}
}

// Load returns the stored collection. The seed is returned when the key is
// absent, unreadable, not valid JSON, or not an array. A stored empty array
// stays empty.
func (b *StorageBridge) Load(ctx context.Context) domain.Collection {
	raw, err := b.durable.Get(ctx, QuotesKey)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			b.logger.WarnContext(ctx, "failed to read stored quotes, using seed",
				slog.Any("error", err),
			)
		}

		return b.seed.Clone()
	}

	var quotes domain.Collection
	if err := json.Unmarshal(raw, &quotes); err != nil {
		b.logger.WarnContext(ctx, "stored quotes are malformed, using seed",
			slog.Any("error", err),
		)

		return b.seed.Clone()
	}

	if quotes == nil {
		return b.seed.Clone()
	}

	return quotes
}

// Save overwrites the stored collection.
func (b *StorageBridge) Save(ctx context.Context, quotes domain.Collection) error {
	raw, err := json.Marshal(quotes.Clone())
	if err != nil {
		return fmt.Errorf("encoding quotes: %w", err)
	}

	if err := b.durable.Set(ctx, QuotesKey, raw); err != nil {
		return fmt.Errorf("saving quotes: %w", err)
	}

	return nil
}

// SaveLastShown records q as the last shown quote of the session.
// A nil session is ignored.
func (b *StorageBridge) SaveLastShown(ctx context.Context, session ports.KeyValueStore, q domain.Quote) error {
	if session == nil {
		return nil
	}

	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding last quote: %w", err)
	}

	if err := session.Set(ctx, LastQuoteKey, raw); err != nil {
		return fmt.Errorf("saving last quote: %w", err)
	}

	return nil
}

// LoadLastShown returns the last shown quote of the session.
// The second result is false when nothing usable is stored.
// An unreadable value is removed so later restores skip it.
func (b *StorageBridge) LoadLastShown(ctx context.Context, session ports.KeyValueStore) (domain.Quote, bool) {
	if session == nil {
		return domain.Quote{}, false
	}

	raw, err := session.Get(ctx, LastQuoteKey)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			b.logger.WarnContext(ctx, "failed to read last quote",
				slog.Any("error", err),
			)
		}

		return domain.Quote{}, false
	}

	var q *domain.Quote
	if err := json.Unmarshal(raw, &q); err != nil || q == nil {
		if err := session.Delete(ctx, LastQuoteKey); err != nil {
			b.logger.WarnContext(ctx, "failed to drop unreadable last quote",
				slog.Any("error", err),
			)
		}

		return domain.Quote{}, false
	}

	return *q, true
}
