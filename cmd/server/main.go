package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/salesdash/backend/internal/application/report"
	"github.com/salesdash/backend/internal/infrastructure/config"
	"github.com/salesdash/backend/internal/infrastructure/fakestore"
	"github.com/salesdash/backend/internal/infrastructure/logger"
	"github.com/salesdash/backend/internal/infrastructure/notify"
	"github.com/salesdash/backend/internal/infrastructure/telemetry"
	"github.com/salesdash/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}

	// Bootstrap logger used while the telemetry providers start
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	tel := setupTelemetry(ctx, cfg, bootLog)

	var otelCores []zapcore.Core
	if tel.logs != nil && tel.logs.IsEnabled() {
		otelCores = append(otelCores, telemetry.NewZapOTELCore(tel.logs, cfg.Telemetry.ServiceName, zapcore.InfoLevel))
	}
	log, err := logger.New(logCfg, otelCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting sales dashboard backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	traceLog, err := logger.NewTraceLog(logger.TraceLogConfig{
		Path:   cfg.TraceLog.Path,
		Source: cfg.TraceLog.Source,
	})
	if err != nil {
		log.Fatal("Failed to open trace log", zap.Error(err), zap.String("path", cfg.TraceLog.Path))
	}
	defer func() {
		if err := traceLog.Close(); err != nil {
			log.Error("Error closing trace log", zap.Error(err))
		}
	}()

	client, err := fakestore.NewClient(fakestore.Config{
		BaseURL:          cfg.Upstream.BaseURL,
		Timeout:          cfg.Upstream.Timeout,
		MaxResponseBytes: cfg.Upstream.MaxResponseBytes,
	})
	if err != nil {
		log.Fatal("Failed to create upstream client", zap.Error(err))
	}

	notifier := notify.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout)
	if !notifier.Enabled() {
		log.Info("Completion webhook disabled")
	}

	opts := []report.SalesDataOption{
		report.WithTraceRecorder(traceLog),
		report.WithNotifier(notifier),
	}
	if tel.metrics != nil {
		salesMetrics, err := telemetry.NewSalesMetrics(tel.metrics.Meter("salesdash/report"))
		if err != nil {
			log.Fatal("Failed to create sales metrics", zap.Error(err))
		}
		opts = append(opts, report.WithMetrics(salesMetrics))
	}
	salesData := report.NewSalesDataService(client, opts...)
	dashboardSvc := report.NewDashboardService(salesData)

	deps := router.Dependencies{
		Logger:    log,
		SalesData: salesData,
		Dashboard: dashboardSvc,
	}
	if tel.tracer != nil && tel.tracer.IsEnabled() {
		deps.TracerProvider = tel.tracer.Provider()
	}
	if tel.metrics != nil && tel.metrics.IsEnabled() {
		deps.MeterProvider = tel.metrics
	}

	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
		HTTP:        cfg.HTTP,
	}, deps)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           cfg.App.Addr(),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	tel.shutdown(shutdownCtx, log)

	log.Info("Server exited gracefully")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// providers groups the OpenTelemetry providers; fields are nil when
// telemetry is disabled or failed to start
type providers struct {
	tracer  *telemetry.TracerProvider
	metrics *telemetry.MeterProvider
	logs    *telemetry.LoggerProvider
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) providers {
	var p providers
	if !cfg.Telemetry.Enabled {
		log.Info("Telemetry disabled")
		return p
	}

	tc := cfg.Telemetry
	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: tc.CollectorEndpoint,
		SamplingRatio:     tc.SamplingRatio,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Warn("Failed to start tracer provider, tracing disabled", zap.Error(err))
	} else {
		p.tracer = tracer
	}

	metrics, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           true,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Warn("Failed to start meter provider, metrics disabled", zap.Error(err))
	} else {
		p.metrics = metrics
	}

	logs, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           true,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Warn("Failed to start logger provider, log export disabled", zap.Error(err))
	} else {
		p.logs = logs
	}
	return p
}

func (p providers) shutdown(ctx context.Context, log *zap.Logger) {
	if p.tracer != nil {
		if err := p.tracer.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}
	if p.metrics != nil {
		if err := p.metrics.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}
	if p.logs != nil {
		if err := p.logs.Shutdown(ctx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}
}
