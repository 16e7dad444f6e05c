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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/cache"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/config"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/handlers"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcp"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcpserve"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/tools"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	// Logs go to stderr so the stdio transports own stdout.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("gateway_starting",
		"mode", cfg.Mode,
		"port", cfg.Port,
		"version", config.Version,
		"grammar_remote", cfg.GramadoirBaseURL != "",
		"spellcheck_remote", cfg.SpellcheckBaseURL != "",
	)

	var resultCache *cache.Cache
	if cfg.RedisURL != "" {
		resultCache, err = cache.New(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL(), logger)
		if err != nil {
			logger.Error("failed to create result cache", "error", err)
			os.Exit(1)
		}
		defer resultCache.Close()
		logger.Info("result_cache_initialized", "ttl_s", cfg.CacheTTLSeconds)
	}

	registry, err := tools.BuildRegistry(cfg, resultCache, logger)
	if err != nil {
		logger.Error("failed to build tool registry", "error", err)
		os.Exit(1)
	}

	switch cfg.Mode {
	case config.ModeStdio:
		dispatcher := mcp.NewDispatcher(registry, config.Version, logger)
		if err := mcp.RunStdio(context.Background(), os.Stdin, os.Stdout, dispatcher, logger); err != nil {
			logger.Error("stdio_loop_error", "error", err)
			os.Exit(1)
		}

	case config.ModeMCPStdio:
		if err := mcpserve.ServeStdio(context.Background(), registry, config.Version, logger); err != nil {
			logger.Error("mcp_stdio_error", "error", err)
			os.Exit(1)
		}

	default:
		if err := runHTTP(cfg, registry, logger); err != nil {
			logger.Error("server_error", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("gateway_stopped")
}

func runHTTP(cfg *config.Config, registry *mcp.Registry, logger *slog.Logger) error {
	mcpHandler, err := mcpserve.HTTPHandler(registry, config.Version, logger)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(handlers.CorrelationIDMiddleware)
	r.Use(handlers.LoggingMiddleware(logger))

	r.Get("/healthz", handlers.HealthHandler(registry, logger))
	r.Handle("/mcp", mcpHandler)

	if !cfg.DeprecateREST {
		dispatcher := mcp.NewDispatcher(registry, config.Version, logger)
		r.Post("/v1/grammar/check", handlers.NewRPCHandler(dispatcher, logger).ServeHTTP)
	}

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway_listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutdown_signal_received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
