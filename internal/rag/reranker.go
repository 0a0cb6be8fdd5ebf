package rag

import (
	"context"
	"fmt"
	"sort"
	"time"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/metrics"
)

// Scorer returns one relevance score per document for a query, in document order.
type Scorer interface {
	Score(ctx context.Context, query string, documents []string) ([]float64, error)
}

// Reranker runs the second, precision-oriented stage over retrieved candidates.
type Reranker struct {
	scorer Scorer
}

// NewReranker creates a reranker backed by scorer.
func NewReranker(scorer Scorer) *Reranker {
	return &Reranker{scorer: scorer}
}

// Rerank scores every candidate against query in one batch and returns the best k,
// highest relevance first. Equal scores keep retrieval order. Scorer failures wrap ErrRerank.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []RankedCandidate, k int) ([]RerankedResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 || len(candidates) == 0 {
		return []RerankedResult{}, nil
	}

	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = c.Content
	}

	start := time.Now()
	scores, err := r.scorer.Score(ctx, query, documents)
	metrics.ObserveStage(metrics.StageRerank, time.Since(start).Seconds())
	if err != nil {
		logger.ErrorContext(ctx, "failed to score candidates", "candidates", len(candidates), "error", err)
		return nil, fmt.Errorf("%w: failed to score candidates: %w", ErrRerank, err)
	}
	if len(scores) != len(candidates) {
		return nil, fmt.Errorf("%w: scorer returned %d scores for %d candidates", ErrRerank, len(scores), len(candidates))
	}

	results := make([]RerankedResult, len(candidates))
	for i, c := range candidates {
		results[i] = RerankedResult{
			ID:             c.ID,
			Content:        c.Content,
			Metadata:       c.Metadata,
			RelevanceScore: scores[i],
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if len(results) > k {
		results = results[:k]
	}

	logger.DebugContext(ctx, "rerank completed", "candidates", len(candidates), "k", k, "results", len(results))
	return results, nil
}
