package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestPassageRepo_UpsertBatchAndGet(t *testing.T) {
	repo := NewPassageRepo(newTestDB(t))
	ctx := context.Background()

	passages := []*Passage{
		{ID: "major-001", SourceType: "major", Content: "Ngành Dược học", Metadata: map[string]string{"ma_nganh": "7720201", "source_type": "major"}},
		{ID: "faculty-001", SourceType: "faculty", Content: "ThS. Trần Thị B", Metadata: map[string]string{"email": ""}},
	}
	if err := repo.UpsertBatch(ctx, passages); err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}

	tests := []struct {
		name    string
		id      string
		wantErr error
		check   func(*Passage) bool
	}{
		{
			name: "existing passage",
			id:   "major-001",
			check: func(p *Passage) bool {
				return p.SourceType == "major" && p.Metadata["ma_nganh"] == "7720201" && !p.CreatedAt.IsZero()
			},
		},
		{
			name: "empty metadata value kept",
			id:   "faculty-001",
			check: func(p *Passage) bool {
				v, ok := p.Metadata["email"]
				return ok && v == ""
			},
		},
		{
			name:    "missing passage",
			id:      "award-999",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByID() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID() unexpected error: %v", err)
			}
			if !tt.check(got) {
				t.Errorf("GetByID() = %+v", got)
			}
		})
	}
}

func TestPassageRepo_UpsertReplaces(t *testing.T) {
	repo := NewPassageRepo(newTestDB(t))
	ctx := context.Background()

	if err := repo.UpsertBatch(ctx, []*Passage{{ID: "award-001", SourceType: "award", Content: "old"}}); err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}
	if err := repo.UpsertBatch(ctx, []*Passage{{ID: "award-001", SourceType: "award", Content: "new"}}); err != nil {
		t.Fatalf("UpsertBatch() second error = %v", err)
	}

	got, err := repo.GetByID(ctx, "award-001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Content != "new" {
		t.Errorf("Content = %q, want %q", got.Content, "new")
	}
}

func TestPassageRepo_UpsertBatchEmpty(t *testing.T) {
	repo := NewPassageRepo(newTestDB(t))
	if err := repo.UpsertBatch(context.Background(), nil); err != nil {
		t.Errorf("UpsertBatch(nil) error = %v", err)
	}
}

func TestPassageRepo_CountBySourceType(t *testing.T) {
	repo := NewPassageRepo(newTestDB(t))
	ctx := context.Background()

	counts, err := repo.CountBySourceType(ctx)
	if err != nil {
		t.Fatalf("CountBySourceType() error = %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("CountBySourceType() on empty table = %v", counts)
	}

	_ = repo.UpsertBatch(ctx, []*Passage{
		{ID: "major-001", SourceType: "major", Content: "a"},
		{ID: "major-002", SourceType: "major", Content: "b"},
		{ID: "award-001", SourceType: "award", Content: "c"},
	})

	counts, err = repo.CountBySourceType(ctx)
	if err != nil {
		t.Fatalf("CountBySourceType() error = %v", err)
	}
	if counts["major"] != 2 || counts["award"] != 1 || counts["faculty"] != 0 {
		t.Errorf("CountBySourceType() = %v", counts)
	}
}
