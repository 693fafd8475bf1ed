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
	"go.uber.org/zap"

	"github.com/aika-cloud/answerdex/internal/config"
	dbRedis "github.com/aika-cloud/answerdex/internal/db/redis"
	logpkg "github.com/aika-cloud/answerdex/internal/logger"
	"github.com/aika-cloud/answerdex/internal/metrics"
	searchrepo "github.com/aika-cloud/answerdex/internal/repository/search"
	taxonomyrepo "github.com/aika-cloud/answerdex/internal/repository/taxonomy"
	chiTransport "github.com/aika-cloud/answerdex/internal/transport/chi"
	openaiTransport "github.com/aika-cloud/answerdex/internal/transport/openai"
	answeruc "github.com/aika-cloud/answerdex/internal/usecase/answer"
	classifyuc "github.com/aika-cloud/answerdex/internal/usecase/classify"
	expanduc "github.com/aika-cloud/answerdex/internal/usecase/expand"
	healthuc "github.com/aika-cloud/answerdex/internal/usecase/health"
	retrieveuc "github.com/aika-cloud/answerdex/internal/usecase/retrieve"
	"github.com/aika-cloud/answerdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting answerdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create database store. rueidis speaks to both valkey and redis.
	switch cfg.Database.Driver {
	case "valkey", "redis":
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterProviderMetrics()
	metrics.RegisterPipelineMetrics()

	// Static document taxonomy
	taxonomy, err := taxonomyrepo.Load(cfg.Taxonomy.Path)
	if err != nil {
		logger.Fatal("Failed to load taxonomy", zap.Error(err))
	}
	logger.Info("Taxonomy loaded",
		zap.String("path", cfg.Taxonomy.Path),
		zap.Int("documents", taxonomy.Len()),
	)

	// OpenAI-compatible collaborators
	completerCfg := &openaiTransport.Config{
		APIKey:  cfg.Completion.APIKey,
		BaseURL: cfg.Completion.BaseURL,
		Logger:  logger,
	}
	synthesisCompleter := openaiTransport.NewCompleter(completerCfg, "synthesis")
	expansionCompleter := openaiTransport.NewCompleter(completerCfg, "expansion")
	classifierCompleter := openaiTransport.NewCompleter(completerCfg, "classification")

	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	logger.Info("Providers created",
		zap.String("synthesis_model", cfg.Completion.SynthesisModel),
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Repositories
	searchRepo := searchrepo.New(store, embedder, cfg.Storage.KeyPrefix).
		WithTaxonomy(taxonomy)

	// Use case services
	auxTimeout := time.Duration(cfg.Completion.AuxiliaryTimeout) * time.Second
	expandSvc := expanduc.New(expansionCompleter, cfg.Completion.ExpansionModel, auxTimeout, logger)
	retrieveSvc := retrieveuc.New(
		searchRepo,
		cfg.Retrieval.MaxConcurrent,
		time.Duration(cfg.Retrieval.QueryTimeout)*time.Second,
		logger,
	)
	classifySvc := classifyuc.New(classifierCompleter, cfg.Completion.ClassifierModel, auxTimeout, logger)
	answerSvc := answeruc.New(
		expandSvc, retrieveSvc, classifySvc, synthesisCompleter,
		answeruc.Config{
			Model:            cfg.Completion.SynthesisModel,
			Expansions:       cfg.Retrieval.Expansions,
			TopK:             cfg.Retrieval.TopK,
			SynthesisTimeout: time.Duration(cfg.Completion.SynthesisTimeout) * time.Second,
		},
		logger,
	)

	// Health service
	healthSvc := healthuc.New(store, synthesisCompleter, embedder)

	// Create chi server
	server := chiTransport.NewServer(answerSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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
						"code":    "internal_error",
						"message": "internal error",
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
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
