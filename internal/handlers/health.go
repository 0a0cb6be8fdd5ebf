package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/service"
	"admissions-rag/internal/vectorstore"
)

// ReadinessReporter exposes the model readiness of the answer service.
type ReadinessReporter interface {
	State() service.State
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	readiness          ReadinessReporter
	store              vectorstore.DocumentStore
	collectionName     string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(readiness ReadinessReporter, store vectorstore.DocumentStore, collectionName string) *HealthHandler {
	return &HealthHandler{
		readiness:          readiness,
		store:              store,
		collectionName:     collectionName,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Returns 200 OK if healthy, 503 Service Unavailable if degraded or unhealthy.
// Models still loading report "degraded"; failed models or an unusable
// document store report "unhealthy".
//
// swagger:route GET /api/health healthCheck
//
// # Health check endpoint
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: System is healthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: System is degraded or unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	status := "healthy"

	switch state := h.readiness.State(); state {
	case service.StateReady:
		checks["models"] = "ok"
	case service.StateInitializing:
		checks["models"] = string(state)
		issues = append(issues, "models_loading")
		status = "degraded"
	default:
		checks["models"] = "error"
		issues = append(issues, "models_unavailable")
		status = "unhealthy"
	}

	if h.checkStore(checkCtx, logger) {
		checks["vector_store"] = "ok"
	} else {
		checks["vector_store"] = "error"
		issues = append(issues, "vector_store_unavailable")
		status = "unhealthy"
	}

	httpStatus := http.StatusOK
	if len(issues) > 0 {
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}

	writeJSON(w, r, httpStatus, response)
}

// checkStore checks that the collection exists and holds passages.
func (h *HealthHandler) checkStore(ctx context.Context, logger *slog.Logger) bool {
	exists, err := h.store.CollectionExists(ctx, h.collectionName)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		return false
	}
	if !exists {
		logger.WarnContext(ctx, "vector store collection does not exist", "collection", h.collectionName)
		return false
	}

	count, err := h.store.Count(ctx, h.collectionName)
	if err != nil {
		logger.WarnContext(ctx, "vector store count failed", "error", err)
		return false
	}
	if count == 0 {
		logger.WarnContext(ctx, "vector store collection is empty", "collection", h.collectionName)
		return false
	}
	return true
}
