package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cincinnati-Associates/tomi-app-sub000/config"
	httpLayer "github.com/Cincinnati-Associates/tomi-app-sub000/http"
	"github.com/Cincinnati-Associates/tomi-app-sub000/logging"
	"github.com/Cincinnati-Associates/tomi-app-sub000/repository"
	"github.com/Cincinnati-Associates/tomi-app-sub000/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", false)
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	defaults, err := config.LoadDefaults(cfg.DefaultsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid calculator defaults")
	}

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	reportRepo := repository.NewReportRepositoryMemory(cfg.ReportHistory)
	calculatorService := service.NewCalculatorService(reportRepo, cache, service.Options{
		AllowedTermYears: defaults.AllowedTermYears,
		DefaultState:     defaults.State(),
		CacheTTL:         cfg.CacheTTL,
	}, logger)

	calculatorHandler := httpLayer.NewCalculatorHandler(calculatorService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	calculatorHandler.Register(mux, rateLimiter)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("calculator API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error().Err(err).Msg("error starting server")
		return
	case <-quit:
		logger.Info().Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server exited")
}

// newCache connects to Redis when an address is configured and falls back to
// the in-memory cache otherwise.
func newCache(cfg config.Config, logger zerolog.Logger) (repository.CacheRepository, func()) {
	if cfg.RedisAddr == "" {
		return repository.NewMockCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		return repository.NewMockCache(), func() {}
	}

	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing redis")
		}
	}
}
