package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/newsdeck/articles-api/internal/config"
	"github.com/newsdeck/articles-api/internal/domain/article"
	"github.com/newsdeck/articles-api/internal/engine"
	logpkg "github.com/newsdeck/articles-api/internal/logger"
	"github.com/newsdeck/articles-api/internal/metrics"
	articlesrepo "github.com/newsdeck/articles-api/internal/repository/articles"
	chiTransport "github.com/newsdeck/articles-api/internal/transport/chi"
	articlesuc "github.com/newsdeck/articles-api/internal/usecase/articles"
	healthuc "github.com/newsdeck/articles-api/internal/usecase/health"
	"github.com/newsdeck/articles-api/internal/version"
)

func main() {
	// Local .env files hold the engine credentials during development.
	_ = godotenv.Load()

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting articles API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_index", cfg.Engine.Index),
		zap.Bool("engine_configured", cfg.Engine.Configured()),
	)

	if err := article.ValidateMapping(); err != nil {
		logger.Fatal("Invalid field mapping", zap.Error(err))
	}

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	// The engine client is optional at startup: without endpoint and API
	// key the service stays up and /articles reports the missing
	// configuration per request.
	var engineClient *engine.Client
	if cfg.Engine.Configured() {
		engineClient, err = engine.NewClient(&engine.Config{
			Endpoint:        cfg.Engine.Endpoint,
			APIKey:          cfg.Engine.APIKey,
			InsecureSkipTLS: cfg.Engine.InsecureSkipTLS,
			RequestTimeout:  time.Duration(cfg.Engine.RequestTimeoutSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create engine client", zap.Error(err))
		}
		logger.Info("Engine client created", zap.String("endpoint", cfg.Engine.Endpoint))
	} else {
		logger.Warn("Engine not configured; /articles will return configuration errors")
	}

	// Pass nil interface (not typed nil pointer!) when no client exists.
	// Go gotcha: (*engine.Client)(nil) wrapped in the interface != nil.
	var repoEngine articlesrepo.Engine
	if engineClient != nil {
		repoEngine = engineClient
	}

	repo := articlesrepo.New(repoEngine, cfg.Engine.Index)
	articlesSvc := articlesuc.New(repo)
	healthSvc := healthuc.New(engineClient != nil)

	server := chiTransport.NewServer(
		articlesSvc, healthSvc,
		cfg.Pagination.DefaultSize, cfg.Pagination.MaxSize,
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"detail": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
