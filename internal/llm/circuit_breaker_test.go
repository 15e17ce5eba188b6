package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/seanankenbruck/ti-bot/internal/observability"
)

func testBreakerConfig(t *testing.T, timeout time.Duration) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests: 1,
		Interval:    1 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			t.Logf("State changed from %s to %s", from, to)
		},
	}
}

func TestCircuitBreakerCompleter_Success(t *testing.T) {
	mockCompleter := new(MockCompleter)
	expected := &Response{Text: "rewritten"}
	mockCompleter.On("Complete", mock.Anything, Request{Prompt: "test prompt"}).Return(expected, nil)

	cb := NewCircuitBreakerCompleter(mockCompleter, DefaultCircuitBreakerConfig, observability.NopLogger())

	response, err := cb.Complete(context.Background(), Request{Prompt: "test prompt"})

	assert.NoError(t, err)
	assert.Equal(t, expected, response)
	assert.Equal(t, "mock", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	mockCompleter.AssertExpectations(t)
}

func TestCircuitBreakerCompleter_OpensAfterFailures(t *testing.T) {
	mockCompleter := new(MockCompleter)
	mockCompleter.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("service unavailable"))

	cb := NewCircuitBreakerCompleter(mockCompleter, testBreakerConfig(t, 100*time.Millisecond), nil)

	for i := 0; i < 3; i++ {
		_, err := cb.Complete(context.Background(), Request{Prompt: "test prompt"})
		assert.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	// Next request should fail immediately without calling the completer
	_, err := cb.Complete(context.Background(), Request{Prompt: "test prompt"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	mockCompleter.AssertNumberOfCalls(t, "Complete", 3)
}

func TestCircuitBreakerCompleter_HalfOpenRecovery(t *testing.T) {
	mockCompleter := new(MockCompleter)
	mockCompleter.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("service unavailable")).Times(3)
	mockCompleter.On("Complete", mock.Anything, mock.Anything).Return(&Response{Text: "back"}, nil).Once()

	cb := NewCircuitBreakerCompleter(mockCompleter, testBreakerConfig(t, 50*time.Millisecond), nil)

	for i := 0; i < 3; i++ {
		_, err := cb.Complete(context.Background(), Request{Prompt: "test prompt"})
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	// Wait for timeout to transition to half-open
	time.Sleep(100 * time.Millisecond)

	response, err := cb.Complete(context.Background(), Request{Prompt: "test prompt"})
	assert.NoError(t, err)
	assert.Equal(t, "back", response.Text)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreakerCounts(t *testing.T) {
	mockCompleter := new(MockCompleter)
	mockCompleter.On("Complete", mock.Anything, mock.Anything).Return(&Response{Text: "ok"}, nil)

	cb := NewCircuitBreakerCompleter(mockCompleter, DefaultCircuitBreakerConfig, nil)

	for i := 0; i < 5; i++ {
		_, err := cb.Complete(context.Background(), Request{Prompt: "test prompt"})
		assert.NoError(t, err)
	}

	counts := cb.Counts()
	assert.Equal(t, uint32(5), counts.Requests)
	assert.Equal(t, uint32(0), counts.TotalFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveFailures)
}
