package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"admissions-rag/internal/handlers"
	"admissions-rag/internal/metrics"
	"admissions-rag/internal/service"
	"admissions-rag/internal/storage"
	"admissions-rag/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AnswerService service.AnswerService
	Store         vectorstore.DocumentStore
	Collection    string
	Passages      storage.PassageStore
	EvalRuns      storage.EvalStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)
	r.Use(metrics.Middleware)

	askHandler := handlers.NewAskHandler(deps.AnswerService)
	healthHandler := handlers.NewHealthHandler(deps.AnswerService, deps.Store, deps.Collection)
	passageHandler := handlers.NewPassageHandler(deps.Store, deps.Collection)
	catalogueHandler := handlers.NewCatalogueHandler(deps.Passages)
	evalHandler := handlers.NewEvaluationHandler(deps.EvalRuns)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/ask", askHandler)
			r.Method(http.MethodGet, "/passages/{id}", passageHandler)
			r.Method(http.MethodGet, "/catalogue", catalogueHandler)
			r.Get("/evaluations", evalHandler.List)
			r.Get("/evaluations/{id}", evalHandler.Results)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
