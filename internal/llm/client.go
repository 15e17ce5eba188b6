package llm

import (
	"context"
	"errors"
	"time"
)

// Completer sends a single user prompt to a chat-completion model
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name identifies the provider in logs and metrics
	Name() string
}

// Request is a single-turn completion request
type Request struct {
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Response is the text the model returned plus token usage
type Response struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// Config holds configuration for LLM clients
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	MaxTokens int
}

// ErrEmptyCompletion is returned when the provider answers without any text
var ErrEmptyCompletion = errors.New("completion returned no text")
