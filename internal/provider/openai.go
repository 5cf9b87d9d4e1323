package provider

import (
	"context"
	"errors"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/adcraft/server/internal/shared/config"
)

// OpenAIClient wraps an OpenAI-compatible chat completion API.
// The base URL is configurable, so any compatible aggregator works.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

var _ TextGenerator = (*OpenAIClient)(nil)

// NewOpenAIClient creates a text generation client from configuration.
func NewOpenAIClient(cfg config.TextConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}
}

// Model returns the configured model identifier.
func (c *OpenAIClient) Model() string {
	return c.model
}

// GenerateText performs a single chat completion and unwraps the first
// candidate's content.
func (c *OpenAIClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    c.messages(system, user),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", &Error{Provider: "openai", Op: "chat completion", Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &Error{Provider: "openai", Op: "chat completion", Err: errors.New("empty response")}
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateTextStream performs a streaming chat completion, calling
// onFragment for each delta. The stream is closed on every return path,
// so abandoning consumption releases the connection.
func (c *OpenAIClient) GenerateTextStream(ctx context.Context, system, user string, onFragment func(string) error) error {
	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    c.messages(system, user),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Stream:      true,
	})
	if err != nil {
		return &Error{Provider: "openai", Op: "open stream", Err: err}
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &Error{Provider: "openai", Op: "stream recv", Err: err}
		}

		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if err := onFragment(delta); err != nil {
			return err
		}
	}
}

// HealthCheck issues a minimal one-token completion.
func (c *OpenAIClient) HealthCheck(ctx context.Context) error {
	_, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "ping"},
		},
		MaxTokens: 1,
	})
	if err != nil {
		return &Error{Provider: "openai", Op: "health check", Err: err}
	}
	return nil
}

func (c *OpenAIClient) messages(system, user string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}
}
