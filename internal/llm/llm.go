// Package llm is the gateway to an OpenAI-compatible completion API.
// Every call is a fresh single-message exchange: all needed context is
// embedded in the prompt text, never carried across turns.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Params fixes the decoding parameters for one task type.
type Params struct {
	MaxTokens   int
	Temperature float32
}

// Temperature 0.1 for factual tasks where consistency matters, 0.3
// where question diversity is worth the variance.
var (
	SummaryParams       = Params{MaxTokens: 200, Temperature: 0.1}
	AnswerParams        = Params{MaxTokens: 400, Temperature: 0.1}
	EvaluationParams    = Params{MaxTokens: 300, Temperature: 0.1}
	QuestionParams      = Params{MaxTokens: 800, Temperature: 0.3}
	TypedQuestionParams = Params{MaxTokens: 200, Temperature: 0.3}
)

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api *openai.Client
}

// New creates a new gateway client. baseURL may point at any
// OpenAI-compatible endpoint (api.openai.com, Ollama, vLLM, ...).
func New(baseURL, apiKey string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(config)}
}

// Ping verifies the endpoint is reachable and the key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// Complete sends prompt as a single user message to the named model and
// returns the trimmed reply text.
func (c *Client) Complete(ctx context.Context, modelName, prompt string, p Params) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "model", modelName, "raw", raw)
	return strings.TrimSpace(raw), nil
}
