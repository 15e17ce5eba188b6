package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the chat model used when none is configured
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient implements Completer with the OpenAI chat completions API
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIClient{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Complete sends the prompt as a single user message
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	return &Response{
		Text:         resp.Choices[0].Message.Content,
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
