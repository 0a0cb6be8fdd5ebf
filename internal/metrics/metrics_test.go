package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/passages/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/passages/major-042", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/passages/{id}", "404"))
	if got < 1 {
		t.Errorf("expected http_requests_total >= 1 for route pattern, got %f", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/ok", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", http.NoBody))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/ok", "200"))

	if after-before != 1 {
		t.Errorf("expected one 200 observation, got %f", after-before)
	}
}

func TestIncModelRequest(t *testing.T) {
	before := testutil.ToFloat64(ModelRequestsTotal.WithLabelValues("generation", "m", "error"))
	IncModelRequest("generation", "m", errors.New("boom"))
	after := testutil.ToFloat64(ModelRequestsTotal.WithLabelValues("generation", "m", "error"))

	if after-before != 1 {
		t.Errorf("expected error counter to increase by 1, got %f", after-before)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}
