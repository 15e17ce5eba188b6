package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient(t *testing.T) {
	_, err := NewOpenAIClient(Config{})
	assert.Error(t, err)

	client, err := NewOpenAIClient(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, client.model)
	assert.Equal(t, "openai", client.Name())
}

func TestOpenAIClient_Complete(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Room G-16 is on the ground floor!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 9, "total_tokens": 29}
		}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), Request{Prompt: "rewrite me", Temperature: 0.7})
	require.NoError(t, err)

	assert.Equal(t, "Room G-16 is on the ground floor!", resp.Text)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, 20, resp.InputTokens)
	assert.Equal(t, 9, resp.OutputTokens)

	assert.Equal(t, "gpt-4o-mini", received["model"])
	assert.InDelta(t, 0.7, received["temperature"], 0.001)
	messages := received["messages"].([]interface{})
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "rewrite me", messages[0].(map[string]interface{})["content"])
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "model": "gpt-4o-mini", "choices": []}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(Config{APIKey: "sk-test", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Prompt: "rewrite me"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAIClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(Config{APIKey: "sk-bad", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Prompt: "rewrite me"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}
