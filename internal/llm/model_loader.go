package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ModelLoader asks a llama.cpp router server to load models and waits until they are resident.
type ModelLoader struct {
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
	maxAttempts  int
}

// NewModelLoader creates a new model loader.
func NewModelLoader(baseURL string) *ModelLoader {
	return &ModelLoader{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       http.DefaultClient,
		pollInterval: time.Second,
		maxAttempts:  120,
	}
}

// LoadModelRequest represents the request payload for loading a model.
type LoadModelRequest struct {
	Model string `json:"model"`
}

// LoadModelResponse represents the response from the load model endpoint.
type LoadModelResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ModelStatus represents the status of a model from the /models endpoint.
type ModelStatus struct {
	ID      string `json:"id"`
	InCache bool   `json:"in_cache"`
	Status  struct {
		Value    string `json:"value"`
		ExitCode *int   `json:"exit_code,omitempty"`
		Failed   *bool  `json:"failed,omitempty"`
	} `json:"status"`
}

// ModelsResponse represents the response from the /models endpoint.
type ModelsResponse struct {
	Data []ModelStatus `json:"data"`
}

// EnsureLoaded loads every named model, stopping at the first failure.
func (ml *ModelLoader) EnsureLoaded(ctx context.Context, models ...string) error {
	for _, model := range models {
		if err := ml.LoadModel(ctx, model); err != nil {
			return fmt.Errorf("failed to load model %s: %w", model, err)
		}
	}
	return nil
}

// LoadModel loads a model unless it is already in cache, then polls until the server
// reports it resident, failed, or the attempt limit is reached.
func (ml *ModelLoader) LoadModel(ctx context.Context, modelName string) error {
	status, err := ml.modelStatus(ctx, modelName)
	if err == nil && status != nil && status.InCache {
		return nil
	}

	if err := ml.requestLoad(ctx, modelName); err != nil {
		return err
	}

	// /models/load returns before the load finishes and the load may still fail.
	for i := 0; i < ml.maxAttempts; i++ {
		status, err := ml.modelStatus(ctx, modelName)
		if err == nil && status != nil {
			if status.InCache {
				return nil
			}
			if status.Status.Failed != nil && *status.Status.Failed {
				exitCode := 0
				if status.Status.ExitCode != nil {
					exitCode = *status.Status.ExitCode
				}
				return fmt.Errorf("model load failed with exit code %d", exitCode)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ml.pollInterval):
		}
	}

	return fmt.Errorf("model did not load within %d attempts", ml.maxAttempts)
}

// IsModelLoaded reports whether a model is resident in the server.
func (ml *ModelLoader) IsModelLoaded(ctx context.Context, modelName string) (bool, error) {
	status, err := ml.modelStatus(ctx, modelName)
	if err != nil {
		return false, err
	}
	return status != nil && status.InCache, nil
}

func (ml *ModelLoader) requestLoad(ctx context.Context, modelName string) error {
	body, err := json.Marshal(LoadModelRequest{Model: modelName})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ml.baseURL+"/models/load", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ml.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var loadResp LoadModelResponse
	if err := json.NewDecoder(resp.Body).Decode(&loadResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !loadResp.Success {
		return fmt.Errorf("model load failed: %s", loadResp.Error)
	}
	return nil
}

// modelStatus returns the status entry for modelName, or nil if the server does not list it.
func (ml *ModelLoader) modelStatus(ctx context.Context, modelName string) (*ModelStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ml.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}

	resp, err := ml.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check model status: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}

	for i := range modelsResp.Data {
		if modelsResp.Data[i].ID == modelName {
			return &modelsResp.Data[i], nil
		}
	}
	return nil, nil
}
