package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebox/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebox/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebox/internal/platform/logging"
	"github.com/jsamuelsen/quotebox/internal/platform/telemetry"
)

// RouterConfig contains what SetupRouter wires onto the engine.
type RouterConfig struct {
	// Logger is the base logger placed in every request context.
	Logger *slog.Logger

	// ServiceName names the otelgin tracer.
	ServiceName string

	// Tracing enables otelgin spans. Disable it when no provider is configured.
	Tracing bool

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler

	// Session configures the quote_session cookie.
	Session middleware.SessionOptions

	// Timeout bounds API requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures middleware and routes on the engine.
// Middleware runs in this order:
//  1. Recovery
//  2. Request and correlation IDs
//  3. Tracing and HTTP metrics
//  4. Request logging (skips /-/ paths)
//
// The /api/v1 group adds the session cookie and the request timeout.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		withLogger(cfg.Logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	if cfg.Tracing {
		engine.Use(telemetry.TracingMiddleware(cfg.ServiceName))
	}

	engine.Use(
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Session(cfg.Session))

	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(apiV1)
	}
}

// withLogger seeds the request context with the base logger so request
// scoped fields attach to the configured handler.
func withLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger != nil {
			c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		}

		c.Next()
	}
}
