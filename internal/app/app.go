// Package app wires configuration into the stores, model clients and pipeline shared by the commands.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"admissions-rag/internal/config"
	"admissions-rag/internal/embcache"
	"admissions-rag/internal/llm"
	"admissions-rag/internal/metrics"
	"admissions-rag/internal/rag"
	"admissions-rag/internal/service"
	"admissions-rag/internal/vectorstore"
)

// Embedder embeds single queries and batches.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SetupLogging installs the default slog logger described by cfg.
func SetupLogging(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
	return logger
}

// OpenStore opens the configured document store backend.
func OpenStore(cfg *config.Config) (vectorstore.DocumentStore, error) {
	switch cfg.VectorStore {
	case config.StoreQdrant:
		store, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open qdrant store: %w", err)
		}
		return store, nil
	case config.StoreChromem:
		if err := os.MkdirAll(cfg.ChromaPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create chroma directory: %w", err)
		}
		store, err := vectorstore.NewChromemStore(cfg.ChromaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open chromem store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown vector store %q", cfg.VectorStore)
	}
}

// NewEmbedder builds the embeddings client, wrapped in the Redis cache when EMBED_CACHE_ADDR is set.
// The returned closer releases the cache connection and is never nil.
func NewEmbedder(ctx context.Context, cfg *config.Config) (Embedder, func(), error) {
	client := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
	if cfg.EmbedCacheAddr == "" {
		return client, func() {}, nil
	}

	redisStore, err := embcache.NewRedisStore(cfg.EmbedCacheAddr, cfg.EmbedCacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect embedding cache: %w", err)
	}
	if err := redisStore.Ping(ctx); err != nil {
		redisStore.Close()
		return nil, nil, fmt.Errorf("failed to ping embedding cache: %w", err)
	}
	slog.Info("Embedding cache enabled", "addr", cfg.EmbedCacheAddr, "ttl", cfg.EmbedCacheTTL)

	cached := embcache.New(client, redisStore, cfg.EmbeddingModelName, metrics.EmbeddingCacheTotal)
	return cached, redisStore.Close, nil
}

// NewScorer returns the configured reranking scorer.
func NewScorer(cfg *config.Config) rag.Scorer {
	if cfg.Reranker == config.RerankerLexical {
		return rag.LexicalScorer{}
	}
	return llm.NewCrossEncoder(cfg.RerankerBaseURL, cfg.LLMAPIKey, cfg.RerankerModel)
}

// PipelineOptions maps configuration onto the answer pipeline settings.
func PipelineOptions(cfg *config.Config) rag.Options {
	opts := rag.DefaultOptions()
	opts.TopN = cfg.RetrievalTopN
	opts.TopK = cfg.RerankTopK
	opts.Generation = llm.GenerateParams{
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Sample:      cfg.LLMSample,
	}
	return opts
}

// Pipeline bundles the engine with the clients it was built from, for readiness probing.
type Pipeline struct {
	Engine    *rag.Engine
	Embedder  Embedder
	Scorer    rag.Scorer
	Generator *llm.Client
}

// NewPipeline assembles retrieval, reranking and generation over store.
func NewPipeline(cfg *config.Config, store vectorstore.DocumentStore, embedder Embedder) *Pipeline {
	scorer := NewScorer(cfg)
	generator := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	engine := rag.NewEngine(
		rag.NewRetriever(embedder, store, cfg.CollectionName),
		rag.NewReranker(scorer),
		generator,
		PipelineOptions(cfg),
	)
	return &Pipeline{
		Engine:    engine,
		Embedder:  embedder,
		Scorer:    scorer,
		Generator: generator,
	}
}

// ReadinessChecks returns the probes run before the service accepts questions.
// With MODEL_LOADER_URL set, the models are loaded on the router server first.
func (p *Pipeline) ReadinessChecks(cfg *config.Config) []service.ReadinessCheck {
	var checks []service.ReadinessCheck

	if cfg.ModelLoaderURL != "" {
		loader := llm.NewModelLoader(cfg.ModelLoaderURL)
		models := []string{cfg.LLMModelName, cfg.EmbeddingModelName}
		if cfg.Reranker == config.RerankerCrossEncoder {
			models = append(models, cfg.RerankerModel)
		}
		checks = append(checks, service.ReadinessCheck{
			Name: "model_loader",
			Probe: func(ctx context.Context) error {
				return loader.EnsureLoaded(ctx, models...)
			},
		})
	}

	checks = append(checks,
		service.ReadinessCheck{
			Name:  "embedding",
			Probe: EmbeddingProbe(p.Embedder, cfg.EmbeddingVectorSize),
		},
		service.ReadinessCheck{
			Name:  "reranker",
			Probe: ScorerProbe(p.Scorer),
		},
		service.ReadinessCheck{
			Name:  "generator",
			Probe: p.Generator.Ping,
		},
	)
	return checks
}

// EmbeddingProbe embeds a sample text and checks the vector size.
func EmbeddingProbe(embedder Embedder, vectorSize int) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		vectors, err := embedder.EmbedTexts(ctx, []string{"kiểm tra"})
		if err != nil {
			return fmt.Errorf("failed to embed probe text: %w", err)
		}
		if len(vectors) != 1 || len(vectors[0]) != vectorSize {
			got := 0
			if len(vectors) > 0 {
				got = len(vectors[0])
			}
			return fmt.Errorf("embedding vector size mismatch: expected %d, got %d", vectorSize, got)
		}
		return nil
	}
}

// ScorerProbe scores one pair and checks a score comes back.
func ScorerProbe(scorer rag.Scorer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		scores, err := scorer.Score(ctx, "học phí", []string{"Học phí năm học"})
		if err != nil {
			return fmt.Errorf("failed to score probe pair: %w", err)
		}
		if len(scores) != 1 {
			return fmt.Errorf("reranker returned %d scores for 1 document", len(scores))
		}
		return nil
	}
}
