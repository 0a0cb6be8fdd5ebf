package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func modelsJSON(id string, inCache, failed bool) ModelsResponse {
	status := ModelStatus{ID: id, InCache: inCache}
	if failed {
		f := true
		code := 1
		status.Status.Failed = &f
		status.Status.ExitCode = &code
	}
	return ModelsResponse{Data: []ModelStatus{status}}
}

func newTestLoader(url string) *ModelLoader {
	ml := NewModelLoader(url)
	ml.pollInterval = time.Millisecond
	ml.maxAttempts = 5
	return ml
}

func TestModelLoader_LoadModel(t *testing.T) {
	tests := []struct {
		name      string
		statuses  func(polls int32) ModelsResponse
		loadResp  LoadModelResponse
		wantLoads int32
		wantErr   bool
	}{
		{
			name:      "already in cache skips load",
			statuses:  func(int32) ModelsResponse { return modelsJSON("m", true, false) },
			wantLoads: 0,
		},
		{
			name: "loads and waits until resident",
			statuses: func(polls int32) ModelsResponse {
				return modelsJSON("m", polls >= 3, false)
			},
			loadResp:  LoadModelResponse{Success: true},
			wantLoads: 1,
		},
		{
			name:      "load request rejected",
			statuses:  func(int32) ModelsResponse { return modelsJSON("m", false, false) },
			loadResp:  LoadModelResponse{Success: false, Error: "no such model"},
			wantLoads: 1,
			wantErr:   true,
		},
		{
			name: "load fails after request",
			statuses: func(polls int32) ModelsResponse {
				return modelsJSON("m", false, polls >= 2)
			},
			loadResp:  LoadModelResponse{Success: true},
			wantLoads: 1,
			wantErr:   true,
		},
		{
			name:      "never becomes resident",
			statuses:  func(int32) ModelsResponse { return modelsJSON("m", false, false) },
			loadResp:  LoadModelResponse{Success: true},
			wantLoads: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var polls, loads atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				switch r.URL.Path {
				case "/models":
					n := polls.Add(1)
					_ = json.NewEncoder(w).Encode(tt.statuses(n))
				case "/models/load":
					loads.Add(1)
					_ = json.NewEncoder(w).Encode(tt.loadResp)
				default:
					t.Errorf("unexpected path %s", r.URL.Path)
				}
			}))
			defer server.Close()

			err := newTestLoader(server.URL).LoadModel(context.Background(), "m")
			if tt.wantErr && err == nil {
				t.Errorf("LoadModel() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("LoadModel() unexpected error: %v", err)
			}
			if got := loads.Load(); got != tt.wantLoads {
				t.Errorf("load requests = %d, want %d", got, tt.wantLoads)
			}
		})
	}
}

func TestModelLoader_IsModelLoaded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(modelsJSON("phi", true, false))
	}))
	defer server.Close()

	ml := newTestLoader(server.URL)

	loaded, err := ml.IsModelLoaded(context.Background(), "phi")
	if err != nil || !loaded {
		t.Errorf("IsModelLoaded(phi) = %v, %v; want true, nil", loaded, err)
	}

	loaded, err = ml.IsModelLoaded(context.Background(), "other")
	if err != nil || loaded {
		t.Errorf("IsModelLoaded(other) = %v, %v; want false, nil", loaded, err)
	}
}

func TestModelLoader_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models/load" {
			_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: true})
			return
		}
		_ = json.NewEncoder(w).Encode(modelsJSON("m", false, false))
	}))
	defer server.Close()

	ml := NewModelLoader(server.URL)
	ml.pollInterval = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := ml.LoadModel(ctx, "m"); err == nil {
		t.Error("LoadModel() expected context error, got nil")
	}
}
