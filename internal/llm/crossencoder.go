package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"admissions-rag/internal/metrics"
)

// CrossEncoder scores (query, document) pairs with a reranker model served behind
// a llama.cpp / Jina style /v1/rerank endpoint.
type CrossEncoder struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewCrossEncoder creates a new cross-encoder client.
func NewCrossEncoder(baseURL, apiKey, model string) *CrossEncoder {
	return &CrossEncoder{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// RerankRequest represents the request payload for the rerank API.
type RerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

// RerankResult is the score of one document, addressed by its position in the request.
type RerankResult struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
}

// RerankResponse represents the response from the rerank API.
type RerankResponse struct {
	Results []RerankResult `json:"results"`
}

// Score returns one relevance score per document, in document order.
// Scores are only comparable within a single call.
func (c *CrossEncoder) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	scores, err := c.score(ctx, query, documents)
	metrics.IncModelRequest("rerank", c.Model, err)
	return scores, err
}

func (c *CrossEncoder) score(ctx context.Context, query string, documents []string) ([]float64, error) {
	url := fmt.Sprintf("%s/v1/rerank", c.BaseURL)

	payload := RerankRequest{
		Model:     c.Model,
		Query:     query,
		Documents: documents,
		TopN:      len(documents),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var rerankResp RerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rerankResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(rerankResp.Results) != len(documents) {
		return nil, fmt.Errorf("expected %d scores, got %d", len(documents), len(rerankResp.Results))
	}

	scores := make([]float64, len(documents))
	seen := make([]bool, len(documents))
	for _, r := range rerankResp.Results {
		if r.Index < 0 || r.Index >= len(documents) {
			return nil, fmt.Errorf("score index %d out of range", r.Index)
		}
		if seen[r.Index] {
			return nil, fmt.Errorf("duplicate score index %d", r.Index)
		}
		seen[r.Index] = true
		scores[r.Index] = r.RelevanceScore
	}

	return scores, nil
}
