package eval

import (
	"context"
	"fmt"

	"admissions-rag/internal/storage"
)

// Save stores the report as an evaluation run with one result per row and returns the run id.
func Save(ctx context.Context, runs storage.EvalStore, report Report) (string, error) {
	run := &storage.EvalRun{
		Mode:      report.Mode,
		TopK:      report.TopK,
		HitRate:   report.HitRate,
		MRR:       report.MRR,
		ItemCount: len(report.Rows),
	}

	results := make([]storage.EvalResult, 0, len(report.Rows))
	for i, row := range report.Rows {
		results = append(results, storage.EvalResult{
			Position:       i,
			Query:          row.Query,
			ExpectedDocID:  row.ExpectedDocID,
			ReturnedIDs:    row.ReturnedIDs,
			Rank:           row.Rank,
			Hit:            row.Hit,
			ReciprocalRank: row.ReciprocalRank,
		})
	}

	if err := runs.CreateRun(ctx, run, results); err != nil {
		return "", fmt.Errorf("failed to save evaluation run: %w", err)
	}
	return run.ID, nil
}
