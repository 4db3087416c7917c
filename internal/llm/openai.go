// Package llm wraps the upstream chat-completion provider behind the
// chat.Completer interface.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

// Defaults for the lead-qualification persona: mildly creative sampling and a
// hard cap that keeps replies to the scripted one-or-two sentences.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.8
	DefaultMaxTokens   = 200
)

// Config configures the OpenAI-backed completer.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string // optional, for OpenAI-compatible providers
	Temperature float32
	MaxTokens   int
}

// OpenAIClient issues non-streaming chat completions.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient creates a completer from config, filling in defaults for
// unset sampling fields.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Complete sends one completion request and returns the first choice's text.
// An empty choice list is surfaced as empty text, which the chat service
// replaces with its fallback copy.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    converted,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm: create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
