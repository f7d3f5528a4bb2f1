package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebox/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedStore returns a durable store holding quotes under the quotes key.
func seedStore(t *testing.T, quotes domain.Collection) *memory.Store {
	t.Helper()

	store := memory.New()

	if quotes != nil {
		bridge := NewStorageBridge(StorageBridgeConfig{Durable: store, Logger: discardLogger()})
		require.NoError(t, bridge.Save(context.Background(), quotes))
	}

	return store
}

// newTestWidget creates a widget over durable with a deterministic picker.
func newTestWidget(t *testing.T, durable ports.KeyValueStore, opts ...func(*WidgetConfig)) *Widget {
	t.Helper()

	cfg := WidgetConfig{
		Bridge: NewStorageBridge(StorageBridgeConfig{Durable: durable, Logger: discardLogger()}),
		Picker: func(int) int { return 0 },
		Logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return NewWidget(context.Background(), cfg)
}

// storedQuotes decodes the collection currently held in durable storage.
func storedQuotes(t *testing.T, durable ports.KeyValueStore) domain.Collection {
	t.Helper()

	bridge := NewStorageBridge(StorageBridgeConfig{
		Durable: durable,
		Seed:    domain.Collection{{Text: "seed marker"}},
		Logger:  discardLogger(),
	})

	return bridge.Load(context.Background())
}
