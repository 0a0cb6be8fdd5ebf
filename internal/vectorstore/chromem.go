package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"admissions-rag/internal/contextutil"
)

// errCallerEmbeds is returned if chromem ever tries to embed on its own.
// Every record and query arrives with a precomputed vector.
var errCallerEmbeds = errors.New("embeddings must be supplied by the caller")

// ChromemStore implements DocumentStore on an embedded, persistent chromem-go database.
type ChromemStore struct {
	db *chromem.DB
}

// NewChromemStore opens (or creates) a persistent database under path.
func NewChromemStore(path string) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(path, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open chromem database: %w", err)
	}
	return &ChromemStore{db: db}, nil
}

// NewMemoryChromemStore creates a store that is never written to disk.
func NewMemoryChromemStore() *ChromemStore {
	return &ChromemStore{db: chromem.NewDB()}
}

func noEmbedding(context.Context, string) ([]float32, error) {
	return nil, errCallerEmbeds
}

func (s *ChromemStore) collection(name string) (*chromem.Collection, error) {
	c := s.db.GetCollection(name, noEmbedding)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	return c, nil
}

// Insert adds records to the collection.
func (s *ChromemStore) Insert(ctx context.Context, collection string, records []Record) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(records) == 0 {
		return nil
	}

	c, err := s.collection(collection)
	if err != nil {
		return err
	}

	docs := make([]chromem.Document, 0, len(records))
	for _, r := range records {
		if len(r.Vector) == 0 {
			return fmt.Errorf("record %s has no vector", r.ID)
		}
		docs = append(docs, chromem.Document{
			ID:        r.ID,
			Metadata:  r.Metadata,
			Embedding: r.Vector,
			Content:   r.Content,
		})
	}

	if err := c.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		logger.ErrorContext(ctx, "failed to insert documents", "collection", collection, "count", len(records), "error", err)
		return fmt.Errorf("failed to insert documents: %w", err)
	}

	logger.DebugContext(ctx, "inserted documents", "collection", collection, "count", len(records))
	return nil
}

// Query returns up to n passages closest to vector, best first.
// n is clamped to the collection size.
func (s *ChromemStore) Query(ctx context.Context, collection string, vector []float32, n int) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		return nil, fmt.Errorf("n must be greater than 0")
	}

	c, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	count := c.Count()
	if count == 0 {
		return []Match{}, nil
	}
	if n > count {
		n = count
	}

	results, err := c.QueryEmbedding(ctx, vector, n, nil, nil)
	if err != nil {
		logger.ErrorContext(ctx, "failed to query documents", "collection", collection, "n", n, "error", err)
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		matches = append(matches, Match{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: r.Metadata,
			Score:    r.Similarity,
		})
	}

	logger.DebugContext(ctx, "query completed", "collection", collection, "n", n, "results", len(matches))
	return matches, nil
}

// GetByID returns the passage stored under id.
func (s *ChromemStore) GetByID(ctx context.Context, collection, id string) (Match, error) {
	c, err := s.collection(collection)
	if err != nil {
		return Match{}, err
	}

	doc, err := c.GetByID(ctx, id)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}

	return Match{ID: doc.ID, Content: doc.Content, Metadata: doc.Metadata}, nil
}

// Count returns the number of passages in the collection.
func (s *ChromemStore) Count(_ context.Context, collection string) (int, error) {
	c, err := s.collection(collection)
	if err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// CollectionExists reports whether the collection exists.
func (s *ChromemStore) CollectionExists(_ context.Context, collection string) (bool, error) {
	_, ok := s.db.ListCollections()[collection]
	return ok, nil
}

// EnsureCollection creates the collection if it does not exist. The vector size is
// recorded in the collection metadata; chromem does not enforce it.
func (s *ChromemStore) EnsureCollection(ctx context.Context, collection string, vectorSize int, metadata map[string]string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if s.db.GetCollection(collection, noEmbedding) != nil {
		return nil
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	meta["vector_size"] = strconv.Itoa(vectorSize)

	if _, err := s.db.CreateCollection(collection, meta, noEmbedding); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	logger.InfoContext(ctx, "collection created", "collection", collection, "vector_size", vectorSize)
	return nil
}
