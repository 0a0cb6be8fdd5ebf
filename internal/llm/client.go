package llm

import (
	"context"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"admissions-rag/internal/metrics"
)

// Client is a generation client for an OpenAI-compatible chat completions API.
type Client struct {
	BaseURL string
	Model   string
	client  *openai.Client
}

// NewClient creates a new generation client.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		Model:   model,
		client:  newOpenAIClient(baseURL, apiKey),
	}
}

// Generate sends messages to the model and returns only the generated continuation.
func (c *Client) Generate(ctx context.Context, messages []Message, params GenerateParams) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.Model,
		Messages:  make([]openai.ChatCompletionMessage, 0, len(messages)),
		MaxTokens: params.MaxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	if params.Sample {
		req.Temperature = params.Temperature
	} else {
		// go-openai drops a zero temperature from the payload.
		req.Temperature = math.SmallestNonzeroFloat32
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	metrics.IncModelRequest("generation", c.Model, err)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return Continuation(resp.Choices[0].Message.Content, messages), nil
}

// Ping checks that the generation server answers the model listing endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	return nil
}

// Continuation strips prompt text that some servers echo in front of the completion.
func Continuation(content string, messages []Message) string {
	out := strings.TrimLeft(content, " \t\r\n")
	for _, m := range messages {
		prompt := strings.TrimSpace(m.Content)
		if prompt == "" {
			continue
		}
		if strings.HasPrefix(out, prompt) {
			out = strings.TrimLeft(out[len(prompt):], " \t\r\n")
		}
	}
	return out
}
