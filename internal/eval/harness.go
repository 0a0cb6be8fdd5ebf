// Package eval measures how well the retrieval stages rank a labelled query set.
package eval

import (
	"context"
	"fmt"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/rag"
)

// Ranker modes.
const (
	ModeRetrieval = "retrieval"
	ModeReranked  = "reranked"
)

// Item is one labelled evaluation query.
type Item struct {
	Query         string `json:"query" yaml:"query"`
	ExpectedDocID string `json:"expected_doc_id" yaml:"expected_doc_id"`
}

// Row is the per-item outcome. Rank is 1-based; 0 means the expected passage was not returned.
type Row struct {
	Query         string
	ExpectedDocID string
	// ReturnedIDs are the passage ids the ranker returned, best first.
	ReturnedIDs    []string
	Rank           int
	Hit            bool
	ReciprocalRank float64
}

// Found reports whether the expected passage was returned.
func (r Row) Found() bool {
	return r.Hit
}

func newRow(item Item, ids []string) Row {
	row := Row{
		Query:         item.Query,
		ExpectedDocID: item.ExpectedDocID,
		ReturnedIDs:   ids,
		Rank:          rankOf(ids, item.ExpectedDocID),
	}
	if row.Rank > 0 {
		row.Hit = true
		row.ReciprocalRank = 1 / float64(row.Rank)
	}
	return row
}

// Report holds the per-item rows and the aggregate scores of one run.
type Report struct {
	Mode    string
	TopK    int
	Rows    []Row
	HitRate float64
	MRR     float64
}

// Ranker returns passage ids for a query, best first.
type Ranker interface {
	Rank(ctx context.Context, query string) ([]string, error)
}

// RankerFunc adapts a function to Ranker.
type RankerFunc func(ctx context.Context, query string) ([]string, error)

// Rank calls f.
func (f RankerFunc) Rank(ctx context.Context, query string) ([]string, error) {
	return f(ctx, query)
}

// RetrievalRanker ranks with the retrieval stage alone, keeping the top k candidates.
func RetrievalRanker(retriever *rag.Retriever, k int) Ranker {
	return RankerFunc(func(ctx context.Context, query string) ([]string, error) {
		candidates, err := retriever.Retrieve(ctx, query, k)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(candidates))
		for i, c := range candidates {
			ids[i] = c.ID
		}
		return ids, nil
	})
}

// TwoStageRanker retrieves n candidates and reranks them down to k.
func TwoStageRanker(retriever *rag.Retriever, reranker *rag.Reranker, n, k int) Ranker {
	return RankerFunc(func(ctx context.Context, query string) ([]string, error) {
		candidates, err := retriever.Retrieve(ctx, query, n)
		if err != nil {
			return nil, err
		}
		results, err := reranker.Rerank(ctx, query, candidates, k)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(results))
		for i, r := range results {
			ids[i] = r.ID
		}
		return ids, nil
	})
}

// Evaluate runs every item through ranker and computes Hit Rate and MRR.
// The first ranker error aborts the run.
func Evaluate(ctx context.Context, items []Item, ranker Ranker) (Report, error) {
	logger := contextutil.LoggerFromContext(ctx)

	report := Report{Rows: make([]Row, 0, len(items))}
	if len(items) == 0 {
		return report, nil
	}

	var hits int
	var reciprocalSum float64
	for i, item := range items {
		ids, err := ranker.Rank(ctx, item.Query)
		if err != nil {
			return Report{}, fmt.Errorf("failed to rank item %d: %w", i, err)
		}

		if ids == nil {
			ids = []string{}
		}
		row := newRow(item, ids)
		if row.Hit {
			hits++
		}
		reciprocalSum += row.ReciprocalRank
		report.Rows = append(report.Rows, row)

		logger.DebugContext(ctx, "evaluated item", "index", i, "expected_doc_id", item.ExpectedDocID, "rank", row.Rank)
	}

	report.HitRate = float64(hits) / float64(len(items))
	report.MRR = reciprocalSum / float64(len(items))
	return report, nil
}

func rankOf(ids []string, want string) int {
	for i, id := range ids {
		if id == want {
			return i + 1
		}
	}
	return 0
}
