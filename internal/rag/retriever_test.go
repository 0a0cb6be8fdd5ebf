package rag_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"admissions-rag/internal/rag"
	"admissions-rag/internal/rag/mocks"
	"admissions-rag/internal/vectorstore"
	vsmocks "admissions-rag/internal/vectorstore/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const collection = "tuyensinh"

// corpus builds an in-memory store holding one passage per axis of a 4-d space.
func corpus(t *testing.T) *vectorstore.ChromemStore {
	t.Helper()
	ctx := context.Background()
	store := vectorstore.NewMemoryChromemStore()
	if err := store.EnsureCollection(ctx, collection, 4, nil); err != nil {
		t.Fatalf("EnsureCollection() error = %v", err)
	}
	records := []vectorstore.Record{
		{ID: "major-042", Content: "Thông tin tuyển sinh ngành Công nghệ thông tin, mã ngành 7480201.", Metadata: map[string]string{"source_type": "major"}, Vector: []float32{1, 0, 0, 0}},
		{ID: "major-007", Content: "Thông tin tuyển sinh ngành Dược học, mã ngành 7720201.", Metadata: map[string]string{"source_type": "major"}, Vector: []float32{0, 1, 0, 0}},
		{ID: "faculty-013", Content: "TS. Trần Thị B là trưởng khoa thuộc Khoa Dược.", Metadata: map[string]string{"source_type": "faculty"}, Vector: []float32{0, 0, 1, 0}},
		{ID: "award-002", Content: "Thành tích nổi bật: Giải thưởng 'Sao Khuê' được trao vào năm 2020.", Metadata: map[string]string{"source_type": "award"}, Vector: []float32{0, 0, 0, 1}},
	}
	if err := store.Insert(ctx, collection, records); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return store
}

func TestRetriever_Retrieve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := mocks.NewMockEmbedder(ctrl)
	retriever := rag.NewRetriever(embedder, corpus(t), collection)
	query := "Mã ngành của ngành Công nghệ thông tin là gì?"

	embedder.EXPECT().Embed(gomock.Any(), query).Return([]float32{0.9, 0.3, 0.1, 0}, nil).Times(2)

	first, err := retriever.Retrieve(context.Background(), query, 10)
	if err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("Retrieve() returned %d candidates, want 4 (clamped to store size)", len(first))
	}
	if first[0].ID != "major-042" {
		t.Errorf("Retrieve() top = %s, want major-042", first[0].ID)
	}
	for i := 1; i < len(first); i++ {
		if first[i].SimilarityScore > first[i-1].SimilarityScore {
			t.Errorf("candidates not ordered by similarity at %d", i)
		}
	}
	if first[0].Metadata["source_type"] != "major" || first[0].Content == "" {
		t.Errorf("candidate missing content or metadata: %+v", first[0])
	}

	second, err := retriever.Retrieve(context.Background(), query, 10)
	if err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Retrieve() not deterministic at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestRetriever_LimitsToN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := mocks.NewMockEmbedder(ctrl)
	embedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{0, 0, 1, 0}, nil)

	got, err := rag.NewRetriever(embedder, corpus(t), collection).Retrieve(context.Background(), "trưởng khoa Dược", 2)
	if err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "faculty-013" {
		t.Errorf("Retrieve() = %+v", got)
	}
}

func TestRetriever_InvalidN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	retriever := rag.NewRetriever(mocks.NewMockEmbedder(ctrl), vsmocks.NewMockDocumentStore(ctrl), collection)
	for _, n := range []int{0, -3} {
		if _, err := retriever.Retrieve(context.Background(), "q", n); err == nil {
			t.Errorf("Retrieve(n=%d) expected error, got nil", n)
		}
	}
}

func TestRetriever_Errors(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(e *mocks.MockEmbedder, s *vsmocks.MockDocumentStore)
		wantStore bool
		wantEmbed bool
	}{
		{
			name: "store unreachable",
			setup: func(e *mocks.MockEmbedder, s *vsmocks.MockDocumentStore) {
				e.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
				s.EXPECT().Query(gomock.Any(), collection, []float32{1}, 10).Return(nil, errors.New("connection refused"))
			},
			wantStore: true,
		},
		{
			name: "collection missing",
			setup: func(e *mocks.MockEmbedder, s *vsmocks.MockDocumentStore) {
				e.EXPECT().Embed(gomock.Any(), "q").Return([]float32{1}, nil)
				s.EXPECT().Query(gomock.Any(), collection, gomock.Any(), 10).Return(nil, vectorstore.ErrCollectionNotFound)
			},
			wantStore: true,
		},
		{
			name: "embedding failure",
			setup: func(e *mocks.MockEmbedder, s *vsmocks.MockDocumentStore) {
				e.EXPECT().Embed(gomock.Any(), "q").Return(nil, errors.New("model not loaded"))
			},
			wantEmbed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			embedder := mocks.NewMockEmbedder(ctrl)
			store := vsmocks.NewMockDocumentStore(ctrl)
			tt.setup(embedder, store)

			_, err := rag.NewRetriever(embedder, store, collection).Retrieve(context.Background(), "q", 10)
			if err == nil {
				t.Fatal("Retrieve() expected error, got nil")
			}

			var storeErr *rag.StoreUnavailableError
			if got := errors.As(err, &storeErr); got != tt.wantStore {
				t.Errorf("errors.As(StoreUnavailableError) = %v, want %v", got, tt.wantStore)
			}
			if got := errors.Is(err, rag.ErrStoreUnavailable); got != tt.wantStore {
				t.Errorf("errors.Is(ErrStoreUnavailable) = %v, want %v", got, tt.wantStore)
			}
			if got := errors.Is(err, rag.ErrEmbedding); got != tt.wantEmbed {
				t.Errorf("errors.Is(ErrEmbedding) = %v, want %v", got, tt.wantEmbed)
			}
		})
	}
}
