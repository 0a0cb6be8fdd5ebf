package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/storage"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

// EvaluationHandler serves the stored evaluation run history.
type EvaluationHandler struct {
	runs storage.EvalStore
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(runs storage.EvalStore) *EvaluationHandler {
	return &EvaluationHandler{runs: runs}
}

// EvalRunResponse is one stored evaluation run.
//
// swagger:model EvalRunResponse
type EvalRunResponse struct {
	ID        string  `json:"id"`
	Mode      string  `json:"mode"`
	TopK      int     `json:"top_k"`
	HitRate   float64 `json:"hit_rate"`
	MRR       float64 `json:"mrr"`
	ItemCount int     `json:"item_count"`
	CreatedAt string  `json:"created_at"`
}

// EvalResultResponse is one evaluated query. Rank 0 means not found.
//
// swagger:model EvalResultResponse
type EvalResultResponse struct {
	Query          string   `json:"query"`
	ExpectedDocID  string   `json:"expected_doc_id"`
	ReturnedIDs    []string `json:"actual_top_k_ids"`
	Rank           int      `json:"rank"`
	Hit            bool     `json:"hit"`
	ReciprocalRank float64  `json:"reciprocal_rank"`
}

// List handles GET /api/v1/evaluations?limit=N.
func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRunLimit)
	}

	runs, err := h.runs.ListRuns(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list evaluation runs", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list evaluation runs")
		return
	}

	resp := make([]EvalRunResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, EvalRunResponse{
			ID:        run.ID,
			Mode:      run.Mode,
			TopK:      run.TopK,
			HitRate:   run.HitRate,
			MRR:       run.MRR,
			ItemCount: run.ItemCount,
			CreatedAt: run.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// Results handles GET /api/v1/evaluations/{id}.
func (h *EvaluationHandler) Results(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	runID := chi.URLParam(r, "id")
	results, err := h.runs.ResultsForRun(ctx, runID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Evaluation run not found")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to get evaluation results", "run_id", runID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get evaluation results")
		return
	}

	resp := make([]EvalResultResponse, 0, len(results))
	for _, res := range results {
		resp = append(resp, EvalResultResponse{
			Query:          res.Query,
			ExpectedDocID:  res.ExpectedDocID,
			ReturnedIDs:    res.ReturnedIDs,
			Rank:           res.Rank,
			Hit:            res.Hit,
			ReciprocalRank: res.ReciprocalRank,
		})
	}
	writeJSON(w, r, http.StatusOK, resp)
}
