package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admissions-rag/internal/app"
	"admissions-rag/internal/config"
	"admissions-rag/internal/eval"
	"admissions-rag/internal/http"
	"admissions-rag/internal/metrics"
	"admissions-rag/internal/service"
	"admissions-rag/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions about university admissions from a corpus of majors, faculty and awards.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Admissions RAG API
//   description: |
//     Retrieval-augmented question answering over university admissions data.
//     Questions are answered in Vietnamese and grounded on retrieved, reranked passages.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.SetupLogging(cfg, os.Stdout)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	evalRuns := storage.NewEvalRepo(db)
	if err := prometheus.Register(eval.NewScoreCollector(evalRuns)); err != nil {
		return fmt.Errorf("failed to register evaluation score collector: %w", err)
	}

	store, err := app.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	slog.Info("Document store opened", "backend", cfg.VectorStore, "collection", cfg.CollectionName)

	embedder, closeCache, err := app.NewEmbedder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer closeCache()

	pipeline := app.NewPipeline(cfg, store, embedder)
	answerService := service.NewAnswerService(pipeline.Engine)

	// Models load in the background; questions get the unavailable answer until ready
	go func() {
		if err := answerService.Initialize(ctx, pipeline.ReadinessChecks(cfg)...); err != nil {
			slog.Error("Answer service failed to initialize", "error", err)
		}
	}()

	router := http.NewRouter(&http.Deps{
		AnswerService: answerService,
		Store:         store,
		Collection:    cfg.CollectionName,
		Passages:      storage.NewPassageRepo(db),
		EvalRuns:      evalRuns,
	})

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", server.Addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName, "reranker", cfg.Reranker)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return fmt.Errorf("API server failed to start: %w", err)
	}
	slog.Info("API server stopped")
	return nil
}
