// Package main - Entry point for the grocery-cost HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grocery-cost/adapters/pricebook"
	"grocery-cost/api"
	"grocery-cost/core/engine"
	"grocery-cost/internal/config"
	"grocery-cost/internal/logging"
	"grocery-cost/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfgPath := flag.String("config", "", "config file (JSON)")
	addr := flag.String("addr", "", "server address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	book, source, err := pricebook.NewLoader(logging.Named("pricebook")).Load(cfg.Pricing.PricebookPath)
	if err != nil {
		logging.Fatal("failed to load pricebook", zap.Error(err))
	}

	eng := engine.New(book, nil, nil).WithLogger(logging.Named("engine"))
	srv := api.NewServer(eng, cfg, logging.Named("api")).HTTPServer()

	go func() {
		logging.Info("starting server",
			zap.String("version", version.Version),
			zap.String("address", srv.Addr),
			zap.String("pricebook", source.Filename),
			zap.Bool("debug", cfg.Server.Debug),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("forced shutdown", zap.Error(err))
	}
}
