package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ressKim-io/iris-classifier/internal/adapter/http/router"
	"github.com/ressKim-io/iris-classifier/internal/adapter/repository/file"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/config"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/logger"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/metrics"
	"github.com/ressKim-io/iris-classifier/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	m := metrics.New()

	// Load the model; the server still starts without one
	model, err := usecase.LoadModel(context.Background(), file.NewArtifactRepository(cfg.Model.Path))
	if err != nil {
		log.Warn("Model not loaded, /predict will fail until the server is restarted with a trained model",
			zap.String("path", cfg.Model.Path),
			zap.Error(err),
			zap.String("hint", "run 'go run ./cmd/train' to train the model first"),
		)
	} else {
		log.Info("Model loaded",
			zap.String("path", cfg.Model.Path),
			zap.String("model_id", model.ID().String()),
			zap.Bool("supports_probability", model.SupportsProbability()),
		)
	}
	m.SetModelLoaded(model != nil)

	// Setup router
	r, err := router.Setup(cfg.Server, usecase.NewPredictUsecase(model), m, log)
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
