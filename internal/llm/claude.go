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

const (
	ClaudeAPIBaseURL   = "https://api.anthropic.com/v1"
	ClaudeVersion      = "2023-06-01"
	DefaultClaudeModel = "claude-3-5-sonnet-20241022"
	DefaultMaxTokens   = 1000
)

// ClaudeClient implements Completer using Anthropic's Messages API
type ClaudeClient struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// Claude API request structures
type ClaudeRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	Messages    []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Claude API response structures
type ClaudeResponse struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
	Model   string         `json:"model"`
	Usage   Usage          `json:"usage"`
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Error response structure
type ClaudeError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ClaudeErrorResponse struct {
	Error ClaudeError `json:"error"`
}

// NewClaudeClient creates a new Claude client
func NewClaudeClient(cfg Config) (*ClaudeClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultClaudeModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ClaudeAPIBaseURL
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ClaudeClient{
		apiKey:    cfg.APIKey,
		model:     model,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxTokens: maxTokens,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name returns the provider name
func (c *ClaudeClient) Name() string {
	return "claude"
}

// Complete sends the prompt to Claude and returns the text of all text blocks
func (c *ClaudeClient) Complete(ctx context.Context, req Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	request := ClaudeRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: float64(req.Temperature),
		Messages: []Message{
			{
				Role:    "user",
				Content: req.Prompt,
			},
		},
	}

	response, err := c.sendClaudeRequest(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Claude: %w", err)
	}

	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, ErrEmptyCompletion
	}

	return &Response{
		Text:         sb.String(),
		Model:        response.Model,
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}, nil
}

// sendClaudeRequest handles the HTTP communication with Claude API
func (c *ClaudeClient) sendClaudeRequest(ctx context.Context, request ClaudeRequest) (*ClaudeResponse, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", ClaudeVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleAPIError(resp.StatusCode, body)
	}

	var claudeResponse ClaudeResponse
	if err := json.Unmarshal(body, &claudeResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &claudeResponse, nil
}

// handleAPIError processes Claude API errors
func (c *ClaudeClient) handleAPIError(statusCode int, body []byte) error {
	var errorResponse ClaudeErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err != nil {
		return fmt.Errorf("API error %d: %s", statusCode, string(body))
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("invalid API key: %s", errorResponse.Error.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("rate limit exceeded: %s", errorResponse.Error.Message)
	case http.StatusBadRequest:
		return fmt.Errorf("bad request: %s", errorResponse.Error.Message)
	case http.StatusInternalServerError:
		return fmt.Errorf("Claude API internal error: %s", errorResponse.Error.Message)
	default:
		return fmt.Errorf("Claude API error %d: %s", statusCode, errorResponse.Error.Message)
	}
}
