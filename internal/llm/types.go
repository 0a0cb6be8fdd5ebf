package llm

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// GenerateParams holds decoding parameters for a generation request.
type GenerateParams struct {
	// MaxTokens bounds the number of generated tokens. 0 leaves it to the server.
	MaxTokens int

	// Temperature is the sampling temperature. Ignored when Sample is false.
	Temperature float32

	// Sample enables sampling. When false decoding is greedy.
	Sample bool
}

// newOpenAIClient builds a go-openai client for an OpenAI-compatible server.
// baseURL is the server root (e.g. "http://localhost:8080"); the /v1 prefix is appended.
func newOpenAIClient(baseURL, apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	return openai.NewClientWithConfig(cfg)
}
