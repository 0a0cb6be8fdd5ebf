package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks admissions-rag/internal/ingest Embedder

import (
	"context"
	"fmt"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/storage"
	"admissions-rag/internal/vectorstore"
)

// BatchSize is how many passages are embedded and inserted per round trip.
const BatchSize = 64

// Embedder embeds passage texts in batches.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Builder writes documents into the document store and the passage catalogue.
type Builder struct {
	embedder   Embedder
	store      vectorstore.DocumentStore
	catalogue  storage.PassageStore
	collection string
	vectorSize int
	model      string
}

// NewBuilder creates a new Builder. catalogue may be nil.
func NewBuilder(
	embedder Embedder,
	store vectorstore.DocumentStore,
	catalogue storage.PassageStore,
	collection string,
	vectorSize int,
	model string,
) *Builder {
	return &Builder{
		embedder:   embedder,
		store:      store,
		catalogue:  catalogue,
		collection: collection,
		vectorSize: vectorSize,
		model:      model,
	}
}

// BuildResult reports what a build did.
type BuildResult struct {
	// Skipped is set when the collection already held passages.
	Skipped bool `json:"skipped"`
	// Existing is the passage count found when the build was skipped.
	Existing int `json:"existing,omitempty"`
	// Inserted is the number of passages embedded and stored.
	Inserted int `json:"inserted"`
	// Batches is the number of insert round trips.
	Batches int `json:"batches"`
}

// Build embeds and stores docs in batches of BatchSize. It does nothing if the
// collection already exists and is non-empty.
func (b *Builder) Build(ctx context.Context, docs []Document) (*BuildResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := b.store.CollectionExists(ctx, b.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		count, err := b.store.Count(ctx, b.collection)
		if err != nil {
			return nil, fmt.Errorf("failed to count collection: %w", err)
		}
		if count > 0 {
			logger.InfoContext(ctx, "collection already built, skipping", "collection", b.collection, "passages", count)
			return &BuildResult{Skipped: true, Existing: count}, nil
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to import")
	}

	if err := b.store.EnsureCollection(ctx, b.collection, b.vectorSize, map[string]string{"embedding_model": b.model}); err != nil {
		return nil, fmt.Errorf("failed to ensure collection: %w", err)
	}

	logger.InfoContext(ctx, "starting build", "collection", b.collection, "documents", len(docs), "batch_size", BatchSize)

	result := &BuildResult{}
	for start := 0; start < len(docs); start += BatchSize {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		end := start + BatchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := b.insertBatch(ctx, docs[start:end]); err != nil {
			return result, fmt.Errorf("failed to import batch %d-%d: %w", start, end-1, err)
		}

		result.Inserted += end - start
		result.Batches++
		logger.DebugContext(ctx, "imported batch", "from", start, "to", end-1)
	}

	logger.InfoContext(ctx, "build completed", "collection", b.collection, "inserted", result.Inserted, "batches", result.Batches)
	return result, nil
}

func (b *Builder) insertBatch(ctx context.Context, batch []Document) error {
	texts := make([]string, len(batch))
	for i, d := range batch {
		texts[i] = d.Content
	}

	vectors, err := b.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vectors))
	}

	records := make([]vectorstore.Record, len(batch))
	passages := make([]*storage.Passage, len(batch))
	for i, d := range batch {
		records[i] = vectorstore.Record{
			ID:       d.ID,
			Content:  d.Content,
			Metadata: d.Metadata,
			Vector:   vectors[i],
		}
		passages[i] = &storage.Passage{
			ID:         d.ID,
			SourceType: string(d.SourceType),
			Content:    d.Content,
			Metadata:   d.Metadata,
		}
	}

	if err := b.store.Insert(ctx, b.collection, records); err != nil {
		return fmt.Errorf("failed to insert passages: %w", err)
	}

	if b.catalogue != nil {
		if err := b.catalogue.UpsertBatch(ctx, passages); err != nil {
			return fmt.Errorf("failed to record passages: %w", err)
		}
	}
	return nil
}
