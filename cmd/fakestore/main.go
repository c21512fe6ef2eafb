package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salesdash/backend/internal/infrastructure/devstore"
	"github.com/salesdash/backend/internal/infrastructure/logger"
)

func main() {
	defaults := devstore.DefaultGenerateConfig()

	addr := flag.String("addr", ":3001", "listen address")
	fixture := flag.String("fixture", "", "YAML fixture to serve instead of generated data")
	seed := flag.Uint64("seed", defaults.Seed, "generator seed")
	products := flag.Int("products", defaults.Products, "number of generated products")
	carts := flag.Int("carts", defaults.Carts, "number of generated carts")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)
	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	var ds devstore.Dataset
	if *fixture != "" {
		ds, err = devstore.LoadFixture(*fixture)
	} else {
		cfg := defaults
		cfg.Seed = *seed
		cfg.Products = *products
		cfg.Carts = *carts
		ds, err = devstore.Generate(cfg)
	}
	if err != nil {
		log.Fatal("Failed to build dataset", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           devstore.NewHandler(ds, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Fake store listening",
			zap.String("addr", srv.Addr),
			zap.Int("products", len(ds.Products)),
			zap.Int("carts", len(ds.Carts)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
}
