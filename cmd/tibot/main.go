package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seanankenbruck/ti-bot/internal/app"
	"github.com/seanankenbruck/ti-bot/internal/config"
	"github.com/seanankenbruck/ti-bot/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.NewDefaultLoader().Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateWithContext(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := observability.NewLoggerWithConfig(cfg.Log.Level, cfg.Log.Format, "tibot")
	defer logger.Sync()

	gin.SetMode(cfg.Server.GinMode)

	bot, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to start bot", err, nil)
		os.Exit(1)
	}
	defer bot.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      bot.Server().SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info(ctx, "TI-Bot starting", map[string]interface{}{
			"port":            cfg.Server.Port,
			"version":         app.Version,
			"data_source":     cfg.Data.Source,
			"public_base_url": cfg.Server.PublicBaseURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Server stopped unexpectedly", err, nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info(ctx, "Shutting down", map[string]interface{}{"signal": sig.String()})

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Graceful shutdown failed", err, nil)
	}
}
