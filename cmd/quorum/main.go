package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quorumspace/quorum/pkg/config"
	"github.com/quorumspace/quorum/pkg/forum"
	"github.com/quorumspace/quorum/pkg/httputil"
	"github.com/quorumspace/quorum/pkg/middleware"
	"github.com/quorumspace/quorum/pkg/observability"
	"github.com/quorumspace/quorum/pkg/proposals"
	"github.com/quorumspace/quorum/pkg/spaces"
	"github.com/quorumspace/quorum/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		observability.NewLogger(observability.ParseLevel("info"), os.Stderr).
			WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.ParseLevel(cfg.Observability.LogLevel), os.Stdout)
	logger.Info("Starting quorum permission service")

	db, err := storage.NewPostgres(cfg.Storage)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to PostgreSQL")
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), cfg.Storage.PostgresTimeout)
	err = storage.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		logger.WithError(err).Error("Failed to apply migrations")
		os.Exit(1)
	}
	logger.Info("Database schema up to date")

	var redisClient *redis.Client
	if cfg.Storage.RedisURL != "" {
		redisClient, err = storage.NewRedis(cfg.Storage)
		if err != nil {
			// Redis backs rate limiting only; start degraded rather than fail.
			logger.WithError(err).Warn("Redis unavailable, distributed rate limiting disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
	}

	// Query layers
	spacesStore := spaces.NewStore(db)
	spacesResolver := spaces.NewResolver(spacesStore)

	forumStore := forum.NewStore(db)
	forumHandlers := forum.NewHandlers(
		forumStore,
		forum.NewAggregator(forumStore, spacesResolver),
		forum.NewWriter(forumStore, spacesStore),
		metrics,
	)

	proposalsHandlers := proposals.NewHandlers(
		proposals.NewResolver(proposals.NewStore(db), spacesResolver),
		metrics,
	)

	// API router
	router := mux.NewRouter()
	forumHandlers.RegisterRoutes(router)
	proposalsHandlers.RegisterRoutes(router)

	chain := buildMiddleware(cfg, logger, metrics, redisClient)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      chain(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Health and metrics on a separate listener, unwrapped so probes are
	// never rate limited.
	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, observability.NewHealthChecker(db, redisClient))
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(healthMux, registry)
	}
	healthServer := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: healthMux,
	}

	go func() {
		logger.WithField("addr", healthServer.Addr).Info("Health server listening")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Health server failed")
		}
	}()

	if metrics != nil {
		go func() {
			defer observability.RecoverPanic(logger, "db stats reporter")
			reportDBStats(db, metrics)
		}()
	}

	shutdown := observability.NewShutdownManager(logger, server, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(healthServer.Shutdown)

	go func() {
		logger.WithField("addr", server.Addr).Info("API server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("API server failed")
			os.Exit(1)
		}
	}()

	if err := shutdown.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("Shutdown did not complete cleanly")
		os.Exit(1)
	}
}

// buildMiddleware assembles the request pipeline, outermost first: recovery,
// request id, logging, metrics, actor extraction, rate limiting, then body
// guards.
func buildMiddleware(cfg *config.Config, logger *observability.Logger, metrics *observability.Metrics, redisClient *redis.Client) func(http.Handler) http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		httputil.RecoveryMiddleware,
		middleware.RequestIDMiddleware,
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(observability.WithLogger(r.Context(), logger)))
			})
		},
		httputil.LoggingMiddleware,
	}

	if metrics != nil {
		middlewares = append(middlewares, observability.HTTPMetricsMiddleware(metrics))
	}

	middlewares = append(middlewares, middleware.ActorMiddleware)

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Distributed && redisClient != nil {
			middlewares = append(middlewares, middleware.NewDistributedRateLimitMiddleware(redisClient, metrics).Handler)
		} else {
			middlewares = append(middlewares, middleware.NewRateLimitMiddleware().Handler)
		}
	}

	middlewares = append(middlewares,
		httputil.ContentTypeMiddleware,
		httputil.MaxBytesMiddleware(1<<20),
	)

	return httputil.Chain(middlewares...)
}

// reportDBStats feeds connection pool gauges on a fixed interval
func reportDBStats(db *sql.DB, metrics *observability.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		metrics.UpdateDBStats(db.Stats())
	}
}
