//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebox/internal/adapters/http"
	"github.com/jsamuelsen/quotebox/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebox/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage/redis"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotebox/internal/app"
	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/platform/config"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stackOptions selects the backends of an in-process service.
type stackOptions struct {
	// dbPath is the SQLite file. Empty means a fresh file in a temp dir.
	dbPath string

	// redis serves sessions when set. Otherwise sessions are in memory.
	redis *miniredis.Miniredis

	// seed replaces the built-in quotes when nil stored data is found.
	seed domain.Collection
}

// stack is the service wired the way cmd/service wires it.
type stack struct {
	server  *httptest.Server
	widget  *app.Widget
	durable *sqlite.Store
	session ports.KeyValueStore
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startStack opens the stores, builds the widget and serves the router.
func startStack(tb testing.TB, opts stackOptions) *stack {
	tb.Helper()

	ctx := context.Background()
	logger := discardLogger()

	cfg, err := config.LoadFrom(tb.TempDir(), "test")
	require.NoError(tb, err)

	dbPath := opts.dbPath
	if dbPath == "" {
		dbPath = filepath.Join(tb.TempDir(), "quotes.db")
	}

	durable, err := sqlite.Open(ctx, sqlite.Config{Path: dbPath, Logger: logger})
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = durable.Close() })

	registry := ports.NewHealthRegistry()
	require.NoError(tb, registry.Register(durable))

	var session ports.KeyValueStore = memory.New()

	if opts.redis != nil {
		client := redis.NewClient(redis.ClientConfig{URL: "redis://" + opts.redis.Addr()})
		tb.Cleanup(func() { _ = client.Close() })

		store := redis.New(redis.Config{
			Client: client,
			TTL:    time.Hour,
			Breaker: redis.BreakerConfig{
				MaxFailures:   2,
				Timeout:       time.Minute,
				HalfOpenLimit: 1,
			},
			Logger: logger,
		})
		require.NoError(tb, registry.Register(store))

		session = store
	}

	widget := app.NewWidget(ctx, app.WidgetConfig{
		Bridge: app.NewStorageBridge(app.StorageBridgeConfig{
			Durable: durable,
			Seed:    opts.seed,
			Logger:  logger,
		}),
		Logger: logger,
	})

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   "quotebox-integration",
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "test", "test")),
		QuoteHandler:  handlers.NewQuoteHandler(widget, session),
		Session:       middleware.SessionOptions{},
		Timeout:       cfg.Server.RequestTimeout,
	})

	ts := httptest.NewServer(server.Engine())
	tb.Cleanup(ts.Close)

	return &stack{server: ts, widget: widget, durable: durable, session: session}
}
