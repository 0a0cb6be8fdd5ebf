package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/llm"
	"admissions-rag/internal/metrics"
)

// Generator produces the model's continuation for a chat prompt.
type Generator interface {
	Generate(ctx context.Context, messages []llm.Message, params llm.GenerateParams) (string, error)
}

// Options configures the answer pipeline.
type Options struct {
	// TopN is how many candidates the retrieval stage returns.
	TopN int
	// TopK is how many reranked passages reach the prompt.
	TopK int
	// Generation holds the decoding parameters.
	Generation llm.GenerateParams
}

// DefaultOptions returns the standard pipeline settings.
func DefaultOptions() Options {
	return Options{
		TopN: 10,
		TopK: 3,
		Generation: llm.GenerateParams{
			MaxTokens:   512,
			Temperature: 0.1,
			Sample:      true,
		},
	}
}

// Engine answers a query with retrieval, reranking and grounded generation.
type Engine struct {
	retriever *Retriever
	reranker  *Reranker
	generator Generator
	opts      Options
}

// NewEngine creates a new answer engine.
func NewEngine(retriever *Retriever, reranker *Reranker, generator Generator, opts Options) *Engine {
	return &Engine{
		retriever: retriever,
		reranker:  reranker,
		generator: generator,
		opts:      opts,
	}
}

// Retriever returns the engine's retrieval stage.
func (e *Engine) Retriever() *Retriever { return e.retriever }

// Reranker returns the engine's reranking stage.
func (e *Engine) Reranker() *Reranker { return e.reranker }

// Options returns the engine's pipeline settings.
func (e *Engine) Options() Options { return e.opts }

// Answer runs the full pipeline for query.
//
// A store failure is not returned as an error: the fixed technical-difficulty
// answer is returned with no sources. Model failures wrap ErrEmbedding, ErrRerank
// or ErrGeneration.
func (e *Engine) Answer(ctx context.Context, query string) (AnswerResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	logger.DebugContext(ctx, "answer state", "state", "retrieving", "top_n", e.opts.TopN)
	candidates, err := e.retriever.Retrieve(ctx, query, e.opts.TopN)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			logger.ErrorContext(ctx, "document store unavailable", "error", err)
			metrics.IncAnswer(metrics.OutcomeStoreUnavailable)
			return AnswerResult{Answer: TechnicalDifficultyAnswer, Sources: []string{}}, nil
		}
		return AnswerResult{}, fmt.Errorf("failed to retrieve candidates: %w", err)
	}

	logger.DebugContext(ctx, "answer state", "state", "reranking", "candidates", len(candidates), "top_k", e.opts.TopK)
	reranked, err := e.reranker.Rerank(ctx, query, candidates, e.opts.TopK)
	if err != nil {
		metrics.IncAnswer(metrics.OutcomeRerankFailed)
		return AnswerResult{}, fmt.Errorf("failed to rerank candidates: %w", err)
	}

	if len(reranked) == 0 {
		logger.InfoContext(ctx, "no relevant passages found", "candidates", len(candidates))
		metrics.IncAnswer(metrics.OutcomeNotFound)
		return AnswerResult{Answer: NotFoundAnswer, Sources: []string{}}, nil
	}

	sources := make([]string, len(reranked))
	ids := make([]string, len(reranked))
	for i, r := range reranked {
		sources[i] = r.Content
		ids[i] = r.ID
	}

	logger.DebugContext(ctx, "answer state", "state", "prompting", "passages", ids)
	messages := BuildMessages(query, sources)

	logger.DebugContext(ctx, "answer state", "state", "generating", "max_tokens", e.opts.Generation.MaxTokens)
	start := time.Now()
	answer, err := e.generator.Generate(ctx, messages, e.opts.Generation)
	metrics.ObserveStage(metrics.StageGenerate, time.Since(start).Seconds())
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		metrics.IncAnswer(metrics.OutcomeGenerationFailed)
		return AnswerResult{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	answer = strings.TrimSpace(llm.Continuation(answer, messages))
	metrics.IncAnswer(metrics.OutcomeAnswered)
	logger.InfoContext(ctx, "answer generated", "query_length", len(query), "passages", len(sources), "answer_length", len(answer))

	return AnswerResult{Answer: answer, Sources: sources}, nil
}
