package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/seanankenbruck/ti-bot/internal/observability"
)

// CircuitBreakerConfig defines circuit breaker configuration
type CircuitBreakerConfig struct {
	MaxRequests   uint32        // Max requests allowed in half-open state
	Interval      time.Duration // Window for counting failures
	Timeout       time.Duration // Duration circuit stays open before trying recovery
	ReadyToTrip   func(counts gobreaker.Counts) bool
	OnStateChange func(name string, from gobreaker.State, to gobreaker.State)
}

// DefaultCircuitBreakerConfig opens after 5 consecutive failures, or a 60%
// failure ratio over at least 3 requests, and probes again after 30s
var DefaultCircuitBreakerConfig = CircuitBreakerConfig{
	MaxRequests: 1,
	Interval:    10 * time.Second,
	Timeout:     30 * time.Second,
	ReadyToTrip: func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && (counts.ConsecutiveFailures >= 5 || failureRatio >= 0.6)
	},
}

// CircuitBreakerCompleter wraps a Completer with circuit breaker protection.
// While open, calls fail immediately with gobreaker.ErrOpenState.
type CircuitBreakerCompleter struct {
	completer Completer
	breaker   *gobreaker.CircuitBreaker
}

// NewCircuitBreakerCompleter creates a new circuit breaker wrapped completer.
// State changes are logged when the config has no OnStateChange hook.
func NewCircuitBreakerCompleter(completer Completer, config CircuitBreakerConfig, logger *observability.Logger) *CircuitBreakerCompleter {
	onStateChange := config.OnStateChange
	if onStateChange == nil && logger != nil {
		onStateChange = func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(context.Background(), "Circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		}
	}

	settings := gobreaker.Settings{
		Name:          completer.Name(),
		MaxRequests:   config.MaxRequests,
		Interval:      config.Interval,
		Timeout:       config.Timeout,
		ReadyToTrip:   config.ReadyToTrip,
		OnStateChange: onStateChange,
	}

	return &CircuitBreakerCompleter{
		completer: completer,
		breaker:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider's name
func (cb *CircuitBreakerCompleter) Name() string {
	return cb.completer.Name()
}

// Complete wraps the completer's Complete with circuit breaker protection
func (cb *CircuitBreakerCompleter) Complete(ctx context.Context, req Request) (*Response, error) {
	result, err := cb.breaker.Execute(func() (interface{}, error) {
		return cb.completer.Complete(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("circuit breaker: %w", err)
	}

	return result.(*Response), nil
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreakerCompleter) State() gobreaker.State {
	return cb.breaker.State()
}

// Counts returns the current failure counts
func (cb *CircuitBreakerCompleter) Counts() gobreaker.Counts {
	return cb.breaker.Counts()
}
