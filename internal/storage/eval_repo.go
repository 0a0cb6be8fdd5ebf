package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_eval_store.go -package=mocks admissions-rag/internal/storage EvalStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// EvalStore defines the interface for evaluation run history.
type EvalStore interface {
	// CreateRun stores a run and its per-item results. run.ID is assigned if empty.
	CreateRun(ctx context.Context, run *EvalRun, results []EvalResult) error
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*EvalRun, error)
	// ResultsForRun returns the results of a run in evaluation-set order.
	ResultsForRun(ctx context.Context, runID string) ([]EvalResult, error)
}

// EvalRepo provides methods for evaluation run operations.
// It implements the EvalStore interface.
type EvalRepo struct {
	db *sql.DB
}

// NewEvalRepo creates a new EvalRepo.
func NewEvalRepo(db *sql.DB) *EvalRepo {
	return &EvalRepo{db: db}
}

// CreateRun stores a run and its per-item results in one transaction.
func (r *EvalRepo) CreateRun(ctx context.Context, run *EvalRun, results []EvalResult) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO eval_runs (id, mode, top_k, hit_rate, mrr, item_count) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Mode, run.TopK, run.HitRate, run.MRR, run.ItemCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert eval run: %w", err)
	}

	for i, res := range results {
		ids := res.ReturnedIDs
		if ids == nil {
			ids = []string{}
		}
		returned, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("failed to marshal returned ids for result %d: %w", i, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO eval_results (run_id, position, query, expected_doc_id, returned_ids, rank, hit, reciprocal_rank)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, res.Query, res.ExpectedDocID, string(returned), res.Rank, res.Hit, res.ReciprocalRank,
		)
		if err != nil {
			return fmt.Errorf("failed to insert eval result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit eval run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (r *EvalRepo) ListRuns(ctx context.Context, limit int) ([]*EvalRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, mode, top_k, hit_rate, mrr, item_count, created_at
		 FROM eval_runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query eval runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []*EvalRun
	for rows.Next() {
		var run EvalRun
		if err := rows.Scan(&run.ID, &run.Mode, &run.TopK, &run.HitRate, &run.MRR, &run.ItemCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan eval run: %w", err)
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

// ResultsForRun returns the results of a run in evaluation-set order.
// Returns ErrNotFound if the run does not exist.
func (r *EvalRepo) ResultsForRun(ctx context.Context, runID string) ([]EvalResult, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM eval_runs WHERE id = ?", runID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query eval run: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT run_id, position, query, expected_doc_id, returned_ids, rank, hit, reciprocal_rank
		 FROM eval_results WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query eval results: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	results := []EvalResult{}
	for rows.Next() {
		var res EvalResult
		var returned string
		if err := rows.Scan(&res.RunID, &res.Position, &res.Query, &res.ExpectedDocID, &returned,
			&res.Rank, &res.Hit, &res.ReciprocalRank); err != nil {
			return nil, fmt.Errorf("failed to scan eval result: %w", err)
		}
		if err := json.Unmarshal([]byte(returned), &res.ReturnedIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal returned ids: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return results, nil
}
