package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rag.go -package=mocks admissions-rag/internal/rag Embedder,Scorer,Generator

import (
	"context"
	"fmt"
	"time"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/metrics"
	"admissions-rag/internal/vectorstore"
)

// Embedder maps query text to a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever runs the first, recall-oriented stage: nearest passages by vector similarity.
type Retriever struct {
	embedder   Embedder
	store      vectorstore.DocumentStore
	collection string
}

// NewRetriever creates a retriever over one collection.
func NewRetriever(embedder Embedder, store vectorstore.DocumentStore, collection string) *Retriever {
	return &Retriever{
		embedder:   embedder,
		store:      store,
		collection: collection,
	}
}

// Retrieve returns up to n passages closest to query, most similar first.
// Any store failure is returned as a *StoreUnavailableError.
func (r *Retriever) Retrieve(ctx context.Context, query string, n int) ([]RankedCandidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		return nil, fmt.Errorf("n must be greater than 0, got %d", n)
	}

	start := time.Now()
	vector, err := r.embedder.Embed(ctx, query)
	metrics.ObserveStage(metrics.StageEmbed, time.Since(start).Seconds())
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	start = time.Now()
	matches, err := r.store.Query(ctx, r.collection, vector, n)
	metrics.ObserveStage(metrics.StageRetrieve, time.Since(start).Seconds())
	if err != nil {
		return nil, &StoreUnavailableError{Collection: r.collection, Err: err}
	}

	candidates := make([]RankedCandidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, RankedCandidate{
			ID:              m.ID,
			Content:         m.Content,
			Metadata:        m.Metadata,
			SimilarityScore: float64(m.Score),
		})
	}
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	logger.DebugContext(ctx, "retrieval completed", "collection", r.collection, "n", n, "candidates", len(candidates))
	return candidates, nil
}
