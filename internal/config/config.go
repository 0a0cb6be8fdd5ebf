package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Vector store backends.
const (
	StoreChromem = "chromem"
	StoreQdrant  = "qdrant"
)

// Reranker backends.
const (
	RerankerCrossEncoder = "cross-encoder"
	RerankerLexical      = "lexical"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string     `env:"API_PORT" envDefault:"7860"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"`

	// Generation
	LLMBaseURL     string  `env:"LLM_BASE_URL" envDefault:"http://localhost:8080"`
	LLMModelName   string  `env:"LLM_MODEL" envDefault:"Phi-3-mini-4k-instruct"`
	LLMAPIKey      string  `env:"LLM_API_KEY" envDefault:"dummy-key"`
	LLMMaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"512"`
	LLMTemperature float32 `env:"LLM_TEMPERATURE" envDefault:"0.1"`
	LLMSample      bool    `env:"LLM_SAMPLE" envDefault:"true"`

	// Embeddings. The vector size must match the collection the corpus was built with.
	EmbeddingBaseURL    string        `env:"EMBEDDING_BASE_URL" envDefault:"http://localhost:8081"`
	EmbeddingModelName  string        `env:"EMBEDDING_MODEL" envDefault:"vietnamese-sbert"`
	EmbeddingVectorSize int           `env:"EMBEDDING_VECTOR_SIZE" envDefault:"768"`
	EmbedCacheAddr      string        `env:"EMBED_CACHE_ADDR"`
	EmbedCacheTTL       time.Duration `env:"EMBED_CACHE_TTL" envDefault:"0s"`

	// Reranking
	Reranker        string `env:"RERANKER" envDefault:"cross-encoder"`
	RerankerBaseURL string `env:"RERANKER_BASE_URL" envDefault:"http://localhost:8082"`
	RerankerModel   string `env:"RERANKER_MODEL" envDefault:"bge-reranker-v2-m3"`
	ModelLoaderURL  string `env:"MODEL_LOADER_URL"`

	// Document store
	VectorStore    string `env:"VECTOR_STORE" envDefault:"chromem"`
	ChromaPath     string `env:"CHROMA_PATH" envDefault:"data/vector_store/chroma_db"`
	QdrantURL      string `env:"QDRANT_URL" envDefault:"http://localhost:6333"`
	CollectionName string `env:"COLLECTION_NAME" envDefault:"tuyensinh"`

	DBPath  string `env:"DB_PATH" envDefault:"./data/admissions.db"`
	DataDir string `env:"DATA_DIR" envDefault:"data/processed"`

	// Pipeline sizes
	RetrievalTopN int `env:"RETRIEVAL_TOP_N" envDefault:"10"`
	RerankTopK    int `env:"RERANK_TOP_K" envDefault:"3"`
	EvalTopK      int `env:"EVAL_TOP_K" envDefault:"5"`

	EvalSetPath    string `env:"EVAL_SET_PATH" envDefault:"tests/evaluation_set.json"`
	EvalResultsDir string `env:"EVAL_RESULTS_DIR" envDefault:"tests/evaluation_results"`
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.EmbeddingVectorSize <= 0 {
		return fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}
	if c.RerankTopK <= 0 {
		return fmt.Errorf("RERANK_TOP_K must be greater than 0")
	}
	if c.RetrievalTopN < c.RerankTopK {
		return fmt.Errorf("RETRIEVAL_TOP_N (%d) must be at least RERANK_TOP_K (%d)", c.RetrievalTopN, c.RerankTopK)
	}
	if c.EvalTopK <= 0 {
		return fmt.Errorf("EVAL_TOP_K must be greater than 0")
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be greater than 0")
	}

	switch c.VectorStore {
	case StoreChromem:
		if c.ChromaPath == "" {
			return fmt.Errorf("CHROMA_PATH is required when VECTOR_STORE=%s", StoreChromem)
		}
	case StoreQdrant:
		if c.QdrantURL == "" {
			return fmt.Errorf("QDRANT_URL is required when VECTOR_STORE=%s", StoreQdrant)
		}
	default:
		return fmt.Errorf("VECTOR_STORE must be %q or %q, got %q", StoreChromem, StoreQdrant, c.VectorStore)
	}

	switch c.Reranker {
	case RerankerCrossEncoder:
		if c.RerankerBaseURL == "" {
			return fmt.Errorf("RERANKER_BASE_URL is required when RERANKER=%s", RerankerCrossEncoder)
		}
	case RerankerLexical:
	default:
		return fmt.Errorf("RERANKER must be %q or %q, got %q", RerankerCrossEncoder, RerankerLexical, c.Reranker)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.CollectionName == "" {
		return fmt.Errorf("COLLECTION_NAME is required")
	}

	return nil
}
