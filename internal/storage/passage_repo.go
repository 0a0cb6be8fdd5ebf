package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_passage_store.go -package=mocks admissions-rag/internal/storage PassageStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PassageStore defines the interface for the passage catalogue.
type PassageStore interface {
	// UpsertBatch inserts or replaces passages in a single transaction.
	UpsertBatch(ctx context.Context, passages []*Passage) error
	// GetByID gets a passage by its id. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Passage, error)
	// CountBySourceType returns the number of passages per source type.
	CountBySourceType(ctx context.Context) (map[string]int, error)
}

// PassageRepo provides methods for passage catalogue operations.
// It implements the PassageStore interface.
type PassageRepo struct {
	db *sql.DB
}

// NewPassageRepo creates a new PassageRepo.
func NewPassageRepo(db *sql.DB) *PassageRepo {
	return &PassageRepo{db: db}
}

// UpsertBatch inserts or replaces passages in a single transaction.
func (r *PassageRepo) UpsertBatch(ctx context.Context, passages []*Passage) error {
	if len(passages) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO passages (id, source_type, content, metadata)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_type = excluded.source_type,
			content = excluded.content,
			metadata = excluded.metadata`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, p := range passages {
		meta, err := json.Marshal(p.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for %s: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.SourceType, p.Content, string(meta)); err != nil {
			return fmt.Errorf("failed to upsert passage %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit passages: %w", err)
	}
	return nil
}

// GetByID gets a passage by its id. Returns ErrNotFound if not found.
func (r *PassageRepo) GetByID(ctx context.Context, id string) (*Passage, error) {
	var p Passage
	var meta string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, source_type, content, metadata, created_at FROM passages WHERE id = ?",
		id,
	).Scan(&p.ID, &p.SourceType, &p.Content, &meta, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query passage: %w", err)
	}

	if err := json.Unmarshal([]byte(meta), &p.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode passage metadata: %w", err)
	}
	return &p, nil
}

// CountBySourceType returns the number of passages per source type.
func (r *PassageRepo) CountBySourceType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT source_type, COUNT(*) FROM passages GROUP BY source_type")
	if err != nil {
		return nil, fmt.Errorf("failed to count passages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var sourceType string
		var n int
		if err := rows.Scan(&sourceType, &n); err != nil {
			return nil, fmt.Errorf("failed to scan passage count: %w", err)
		}
		counts[sourceType] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return counts, nil
}
