package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"admissions-rag/internal/config"
	"admissions-rag/internal/llm"
	"admissions-rag/internal/rag"
	"admissions-rag/internal/vectorstore"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel:            slog.LevelInfo,
		LogFormat:           "text",
		LLMBaseURL:          "http://localhost:8080",
		LLMModelName:        "Phi-3-mini-4k-instruct",
		LLMAPIKey:           "dummy-key",
		LLMMaxTokens:        256,
		LLMTemperature:      0.2,
		LLMSample:           false,
		EmbeddingBaseURL:    "http://localhost:8081",
		EmbeddingModelName:  "vietnamese-sbert",
		EmbeddingVectorSize: 3,
		Reranker:            config.RerankerLexical,
		RerankerBaseURL:     "http://localhost:8082",
		RerankerModel:       "bge-reranker-v2-m3",
		VectorStore:         config.StoreChromem,
		ChromaPath:          filepath.Join(t.TempDir(), "chroma"),
		CollectionName:      "tuyensinh",
		RetrievalTopN:       8,
		RerankTopK:          2,
		EvalTopK:            5,
	}
}

type fakeEmbedder struct {
	size int
	err  error
}

func (f fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return make([]float32, f.size), nil
}

func (f fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, f.size)
	}
	return out, nil
}

func TestSetupLogging(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	tests := []struct {
		name     string
		format   string
		contains string
	}{
		{name: "text", format: "text", contains: "msg=hello"},
		{name: "json", format: "json", contains: `"msg":"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.LogFormat = tt.format
			var buf bytes.Buffer

			logger := SetupLogging(cfg, &buf)
			logger.Info("hello")

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("log output %q does not contain %q", buf.String(), tt.contains)
			}
		})
	}
}

func TestOpenStore_Chromem(t *testing.T) {
	cfg := testConfig(t)

	store, err := OpenStore(cfg)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	if _, ok := store.(*vectorstore.ChromemStore); !ok {
		t.Errorf("OpenStore() = %T, want *vectorstore.ChromemStore", store)
	}
}

func TestOpenStore_Unknown(t *testing.T) {
	cfg := testConfig(t)
	cfg.VectorStore = "faiss"

	if _, err := OpenStore(cfg); err == nil {
		t.Error("OpenStore() with unknown backend should return error")
	}
}

func TestNewEmbedder_NoCache(t *testing.T) {
	cfg := testConfig(t)

	embedder, closeFn, err := NewEmbedder(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewEmbedder() error = %v", err)
	}
	defer closeFn()

	if _, ok := embedder.(*llm.EmbeddingsClient); !ok {
		t.Errorf("NewEmbedder() = %T, want *llm.EmbeddingsClient", embedder)
	}
}

func TestNewScorer(t *testing.T) {
	cfg := testConfig(t)
	if _, ok := NewScorer(cfg).(rag.LexicalScorer); !ok {
		t.Error("NewScorer() should return the lexical scorer for RERANKER=lexical")
	}

	cfg.Reranker = config.RerankerCrossEncoder
	if _, ok := NewScorer(cfg).(*llm.CrossEncoder); !ok {
		t.Error("NewScorer() should return the cross-encoder for RERANKER=cross-encoder")
	}
}

func TestPipelineOptions(t *testing.T) {
	opts := PipelineOptions(testConfig(t))

	if opts.TopN != 8 || opts.TopK != 2 {
		t.Errorf("TopN, TopK = %d, %d; want 8, 2", opts.TopN, opts.TopK)
	}
	if opts.Generation.MaxTokens != 256 || opts.Generation.Temperature != 0.2 || opts.Generation.Sample {
		t.Errorf("Generation = %+v", opts.Generation)
	}
}

func TestReadinessChecks(t *testing.T) {
	tests := []struct {
		name      string
		loaderURL string
		reranker  string
		wantNames []string
	}{
		{
			name:      "without model loader",
			reranker:  config.RerankerLexical,
			wantNames: []string{"embedding", "reranker", "generator"},
		},
		{
			name:      "with model loader",
			loaderURL: "http://localhost:8080",
			reranker:  config.RerankerCrossEncoder,
			wantNames: []string{"model_loader", "embedding", "reranker", "generator"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.ModelLoaderURL = tt.loaderURL
			cfg.Reranker = tt.reranker
			store := vectorstore.NewMemoryChromemStore()

			p := NewPipeline(cfg, store, fakeEmbedder{size: 3})
			checks := p.ReadinessChecks(cfg)

			if len(checks) != len(tt.wantNames) {
				t.Fatalf("ReadinessChecks() returned %d checks, want %d", len(checks), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if checks[i].Name != want {
					t.Errorf("check %d = %q, want %q", i, checks[i].Name, want)
				}
				if checks[i].Probe == nil {
					t.Errorf("check %q has no probe", checks[i].Name)
				}
			}
		})
	}
}

func TestEmbeddingProbe(t *testing.T) {
	tests := []struct {
		name     string
		embedder fakeEmbedder
		wantErr  bool
	}{
		{name: "matching size", embedder: fakeEmbedder{size: 3}},
		{name: "size mismatch", embedder: fakeEmbedder{size: 4}, wantErr: true},
		{name: "embed error", embedder: fakeEmbedder{err: errors.New("connection refused")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EmbeddingProbe(tt.embedder, 3)(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("EmbeddingProbe() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type brokenScorer struct{}

func (brokenScorer) Score(_ context.Context, _ string, _ []string) ([]float64, error) {
	return []float64{}, nil
}

func TestScorerProbe(t *testing.T) {
	if err := ScorerProbe(rag.LexicalScorer{})(context.Background()); err != nil {
		t.Errorf("ScorerProbe(lexical) error = %v", err)
	}
	if err := ScorerProbe(brokenScorer{})(context.Background()); err == nil {
		t.Error("ScorerProbe() should fail when no score is returned")
	}
}
