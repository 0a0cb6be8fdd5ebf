package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/storage"
	"admissions-rag/internal/vectorstore"
)

// PassageHandler serves exact passage lookups by id.
type PassageHandler struct {
	store      vectorstore.DocumentStore
	collection string
}

// NewPassageHandler creates a new PassageHandler.
func NewPassageHandler(store vectorstore.DocumentStore, collection string) *PassageHandler {
	return &PassageHandler{
		store:      store,
		collection: collection,
	}
}

// PassageResponse represents one stored passage.
//
// swagger:model PassageResponse
type PassageResponse struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// ServeHTTP returns the passage named by the {id} URL parameter.
//
// swagger:route GET /api/v1/passages/{id} getPassage
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/PassageResponse"
//	'404':
//	  description: Passage not found
//	'503':
//	  description: Collection missing
func (h *PassageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, err := url.PathUnescape(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid passage id")
		return
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "Passage id is required")
		return
	}

	match, err := h.store.GetByID(ctx, h.collection, id)
	switch {
	case errors.Is(err, vectorstore.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, "Passage not found")
		return
	case errors.Is(err, vectorstore.ErrCollectionNotFound):
		logger.WarnContext(ctx, "collection missing", "collection", h.collection)
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		return
	case err != nil:
		logger.ErrorContext(ctx, "failed to get passage", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get passage")
		return
	}

	metadata := match.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	writeJSON(w, r, http.StatusOK, PassageResponse{
		ID:       match.ID,
		Content:  match.Content,
		Metadata: metadata,
	})
}

// CatalogueHandler reports how many passages of each source type were built.
type CatalogueHandler struct {
	passages storage.PassageStore
}

// NewCatalogueHandler creates a new CatalogueHandler.
func NewCatalogueHandler(passages storage.PassageStore) *CatalogueHandler {
	return &CatalogueHandler{passages: passages}
}

// CatalogueResponse summarises the passage catalogue.
//
// swagger:model CatalogueResponse
type CatalogueResponse struct {
	Total        int            `json:"total"`
	BySourceType map[string]int `json:"by_source_type"`
}

// ServeHTTP handles GET /api/v1/catalogue.
func (h *CatalogueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	counts, err := h.passages.CountBySourceType(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count passages", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read catalogue")
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	writeJSON(w, r, http.StatusOK, CatalogueResponse{Total: total, BySourceType: counts})
}
