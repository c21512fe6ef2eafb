package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/salesdash/backend/internal/infrastructure/config"
	"github.com/salesdash/backend/internal/infrastructure/logger"
	"github.com/salesdash/backend/internal/infrastructure/telemetry"
	"github.com/salesdash/backend/internal/interfaces/http/handler"
	"github.com/salesdash/backend/internal/interfaces/http/middleware"
	"github.com/salesdash/backend/internal/interfaces/http/openapi"
)

// EngineConfig holds the settings the engine is built from
type EngineConfig struct {
	ServiceName string
	Version     string
	HTTP        config.HTTPConfig
}

// Dependencies are the collaborators wired into the engine.
// TracerProvider and MeterProvider may be nil.
type Dependencies struct {
	Logger         *zap.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  *telemetry.MeterProvider
	SalesData      handler.SalesDataProvider
	Dashboard      handler.DashboardProvider
}

// NewEngine builds the gin engine with the full middleware stack and
// every route of the API:
//
//	GET /health
//	GET /openapi.yaml
//	GET /api/sales-data
//	GET /api/sales-dashboard
func NewEngine(cfg EngineConfig, deps Dependencies) (*gin.Engine, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, fmt.Errorf("set trusted proxies: %w", err)
		}
	}

	// Order matters: the request ID must exist before the span and the
	// request logger are created, and recovery must wrap the handlers.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName:    cfg.ServiceName,
		Enabled:        deps.TracerProvider != nil,
		TracerProvider: deps.TracerProvider,
		SkipPaths:      []string{"/health"},
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: deps.MeterProvider,
		Enabled:       deps.MeterProvider != nil,
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))

	health := handler.NewHealthHandler(cfg.ServiceName, cfg.Version)
	engine.GET("/health", health.Health)
	engine.GET("/openapi.yaml", openapi.Handler())

	r := NewRouter(engine)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		r.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}

	salesRoutes := NewDomainGroup("sales", "")
	salesRoutes.GET("/sales-data", handler.NewSalesHandler(deps.SalesData).GetSalesData)
	salesRoutes.GET("/sales-dashboard", handler.NewDashboardHandler(deps.Dashboard).GetDashboard)
	r.Register(salesRoutes)
	r.Setup()

	return engine, nil
}
