package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/vectord/internal/api"
	"github.com/hyperengineering/vectord/internal/config"
	"github.com/hyperengineering/vectord/internal/embedding"
	"github.com/hyperengineering/vectord/internal/validation"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

// healthProbeTimeout bounds the startup model availability check.
const healthProbeTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:   "vectord",
	Short: "vectord - Text Embedding Service",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	// Signal handling first so startup itself is interruptible
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "provider", cfg.Embedding.Provider, "model", cfg.Embedding.Model)

	embedder, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}

	// Startup probe: the process must not serve if the model is unusable
	probeCtx, probeCancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer probeCancel()
	if err := embedder.Health(probeCtx); err != nil {
		return fmt.Errorf("embedder health check: %w", err)
	}
	slog.Info("embedder ready", "provider", cfg.Embedding.Provider, "model", embedder.ModelName())

	handler := api.NewHandler(embedder, cfg.Embedding.Provider, Version, validation.Limits{
		MaxBatchSize:  cfg.Embedding.MaxBatchSize,
		MaxTextLength: cfg.Embedding.MaxTextLength,
	})
	router := api.NewRouter(handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called
		// gracefully; anything else is a real failure.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	// Drain in-flight requests
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newLogger builds the process logger from config.
func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
