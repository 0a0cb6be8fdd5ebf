package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"admissions-rag/internal/contextutil"
)

// Payload keys written next to each point. Record metadata is nested under payloadMetadata.
const (
	payloadPassageID = "passage_id"
	payloadContent   = "content"
	payloadMetadata  = "metadata"
)

// QdrantStore implements DocumentStore using Qdrant.
type QdrantStore struct {
	client *qdrant.Client
}

// qdrantAddress derives the gRPC host and port from an HTTP URL such as "http://localhost:6333".
// The gRPC port is the HTTP port + 1.
func qdrantAddress(urlStr string) (string, int, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334
	if parsedURL.Port() != "" {
		if httpPort, err := strconv.Atoi(parsedURL.Port()); err == nil {
			port = httpPort + 1
		}
	}
	return host, port, nil
}

// NewQdrantStore creates a new Qdrant document store client.
func NewQdrantStore(urlStr string) (*QdrantStore, error) {
	host, port, err := qdrantAddress(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{client: client}, nil
}

// pointID maps a passage id to a stable Qdrant UUID, since Qdrant only accepts
// integers and UUIDs as point ids.
func pointID(passageID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(passageID)).String()
}

func (s *QdrantStore) requireCollection(ctx context.Context, collection string) error {
	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
	}
	return nil
}

// Insert upserts records into the collection.
func (s *QdrantStore) Insert(ctx context.Context, collection string, records []Record) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, r := range records {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(r.ID)),
			Vectors: qdrant.NewVectors(r.Vector...),
			Payload: qdrant.NewValueMap(recordPayload(r)),
		})
	}

	wait := true
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", collection, "count", len(records), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.DebugContext(ctx, "upserted points", "collection", collection, "count", len(records))
	return nil
}

// Query performs a similarity search and returns up to n passages.
func (s *QdrantStore) Query(ctx context.Context, collection string, vector []float32, n int) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		return nil, fmt.Errorf("n must be greater than 0")
	}
	if err := s.requireCollection(ctx, collection); err != nil {
		return nil, err
	}

	limit := uint64(n)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", collection, "n", n, "error", err)
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	matches := make([]Match, 0, len(scoredPoints))
	for _, p := range scoredPoints {
		m := payloadMatch(p.Payload)
		m.Score = p.Score
		matches = append(matches, m)
	}

	logger.DebugContext(ctx, "search completed", "collection", collection, "n", n, "results", len(matches))
	return matches, nil
}

// GetByID returns the passage stored under id.
func (s *QdrantStore) GetByID(ctx context.Context, collection, id string) (Match, error) {
	if err := s.requireCollection(ctx, collection); err != nil {
		return Match{}, err
	}

	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: collection,
		Ids:            []*qdrant.PointId{qdrant.NewID(pointID(id))},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return Match{}, fmt.Errorf("failed to get point: %w", err)
	}
	if len(points) == 0 {
		return Match{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}

	return payloadMatch(points[0].Payload), nil
}

// Count returns the exact number of points in the collection.
func (s *QdrantStore) Count(ctx context.Context, collection string) (int, error) {
	if err := s.requireCollection(ctx, collection); err != nil {
		return 0, err
	}

	exact := true
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return int(count), nil
}

// CollectionExists checks if a collection exists.
func (s *QdrantStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection existence: %w", err)
	}
	return exists, nil
}

// EnsureCollection ensures a collection exists with the specified vector size.
// If the collection exists, validates that the vector size matches.
// Qdrant collections carry no free-form metadata, so metadata is only logged.
func (s *QdrantStore) EnsureCollection(ctx context.Context, collection string, vectorSize int, metadata map[string]string) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", collection, "vector_size", vectorSize, "metadata", metadata)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}

	actualSize := collectionVectorSize(info)
	if actualSize == 0 {
		return fmt.Errorf("could not determine collection vector size")
	}
	if actualSize != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, actualSize)
	}

	logger.InfoContext(ctx, "collection validated", "collection", collection, "vector_size", vectorSize)
	return nil
}

func collectionVectorSize(info *qdrant.CollectionInfo) int {
	if info == nil || info.Config == nil || info.Config.Params == nil {
		return 0
	}
	vectorsConfig := info.Config.Params.GetVectorsConfig()
	if vectorsConfig == nil {
		return 0
	}
	params := vectorsConfig.GetParams()
	if params == nil {
		return 0
	}
	return int(params.Size)
}

// recordPayload converts a record into a Qdrant payload.
func recordPayload(r Record) map[string]any {
	metadata := make(map[string]any, len(r.Metadata))
	for k, v := range r.Metadata {
		metadata[k] = v
	}
	return map[string]any{
		payloadPassageID: r.ID,
		payloadContent:   r.Content,
		payloadMetadata:  metadata,
	}
}

// payloadMatch is the inverse of recordPayload. Non-string values are formatted.
func payloadMatch(payload map[string]*qdrant.Value) Match {
	fields := payload[payloadMetadata].GetStructValue().GetFields()
	m := Match{
		ID:       valueString(payload[payloadPassageID]),
		Content:  valueString(payload[payloadContent]),
		Metadata: make(map[string]string, len(fields)),
	}
	for k, v := range fields {
		if v == nil {
			continue
		}
		m.Metadata[k] = valueString(v)
	}
	return m
}

func valueString(v *qdrant.Value) string {
	switch val := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_BoolValue:
		return strconv.FormatBool(val.BoolValue)
	case *qdrant.Value_IntegerValue:
		return strconv.FormatInt(val.IntegerValue, 10)
	case *qdrant.Value_DoubleValue:
		return strconv.FormatFloat(val.DoubleValue, 'f', -1, 64)
	default:
		return ""
	}
}
