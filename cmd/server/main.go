package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordlens/internal/config"
	"wordlens/internal/handler"
	"wordlens/pkg/metrics"

	"github.com/joho/godotenv"
)

const (
	shutdownTimeout = 15 * time.Second
	metricsInterval = 15 * time.Second
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	cfg := container.GetConfig()
	appLogger := container.GetLogger()

	// Handlers
	uiHandler := handler.NewUIHandler(
		container.GetAnalysisService(),
		cfg,
		appLogger,
	)
	apiHandler := handler.NewAPIHandler(
		container.GetAnalysisService(),
		cfg,
		appLogger,
	)

	// Router
	router := handler.NewRouter(
		uiHandler,
		apiHandler,
		cfg.GetCORSOrigins(),
		handler.RequestID,
		handler.NewRequestLogger(appLogger).Middleware,
		handler.NewRecoverer(appLogger).Middleware,
	)

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go reportSystemMetrics(ctx)

	// Run server
	go func() {
		appLogger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	<-ctx.Done()

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	appLogger.Info("Server exited")
}

func reportSystemMetrics(ctx context.Context) {
	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()
	for {
		metrics.UpdateSystemMetrics()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
