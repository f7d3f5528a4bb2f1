package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebox/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebox/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotebox/internal/app"
	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// largeCollection returns n quotes spread over ten categories.
func largeCollection(n int) domain.Collection {
	quotes := make(domain.Collection, 0, n)
	for i := range n {
		quotes = append(quotes, domain.Quote{
			Text:     fmt.Sprintf("quote number %d", i),
			Category: fmt.Sprintf("Category %d", i%10),
		})
	}

	return quotes
}

// setupQuoteRouter serves the widget routes over durable with n quotes.
func setupQuoteRouter(b *testing.B, durable ports.KeyValueStore, n int) *gin.Engine {
	b.Helper()

	logger := discardLogger()

	widget := app.NewWidget(context.Background(), app.WidgetConfig{
		Bridge: app.NewStorageBridge(app.StorageBridgeConfig{
			Durable: durable,
			Seed:    largeCollection(n),
			Logger:  logger,
		}),
		Logger: logger,
	})

	router := gin.New()
	router.Use(middleware.Session(middleware.SessionOptions{}))
	handlers.NewQuoteHandler(widget, memory.New()).RegisterQuoteRoutes(router.Group("/api/v1"))

	return router
}

// sessionCookie returns a cookie for a fixed visitor.
func sessionCookie() *http.Cookie {
	return &http.Cookie{Name: middleware.SessionCookieName, Value: "2f1c6a4e-8a4b-4f7e-9b43-0c1d5e7f9a21"}
}

// BenchmarkRandomQuote measures a filtered pick plus the session write.
func BenchmarkRandomQuote(b *testing.B) {
	for _, size := range []int{10, 1000, 10000} {
		b.Run(fmt.Sprintf("quotes=%d", size), func(b *testing.B) {
			router := setupQuoteRouter(b, memory.New(), size)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/random?category=Category+3", http.NoBody)
			req.AddCookie(sessionCookie())

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
			}
		})
	}
}

// BenchmarkCategories measures computing the filter options.
func BenchmarkCategories(b *testing.B) {
	router := setupQuoteRouter(b, memory.New(), 10000)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// BenchmarkAddQuote measures an add that rewrites the whole collection.
func BenchmarkAddQuote(b *testing.B) {
	stores := map[string]func(b *testing.B) ports.KeyValueStore{
		"memory": func(*testing.B) ports.KeyValueStore { return memory.New() },
		"sqlite": func(b *testing.B) ports.KeyValueStore {
			store, err := sqlite.Open(context.Background(), sqlite.Config{Path: sqlite.MemoryPath, Logger: discardLogger()})
			if err != nil {
				b.Fatal(err)
			}
			b.Cleanup(func() { _ = store.Close() })

			return store
		},
	}

	body := []byte(`{"text":"Benchmarks never lie.","category":"Engineering"}`)

	for name, open := range stores {
		b.Run(name, func(b *testing.B) {
			router := setupQuoteRouter(b, open(b), 1000)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")

				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
			}
		})
	}
}

// BenchmarkExport measures serializing a large collection.
func BenchmarkExport(b *testing.B) {
	router := setupQuoteRouter(b, memory.New(), 10000)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/export", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// BenchmarkLivenessHandler measures the performance of the liveness endpoint.
// This is a critical path for Kubernetes probes and should be extremely fast.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z"))
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		handler.Liveness(c)
	}
}

// BenchmarkReadinessHandler_WithStores measures readiness with the quote
// database registered.
func BenchmarkReadinessHandler_WithStores(b *testing.B) {
	store, err := sqlite.Open(context.Background(), sqlite.Config{Path: sqlite.MemoryPath, Logger: discardLogger()})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = store.Close() })

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)

	handler := handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z"))
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		handler.Readiness(c)
	}
}
