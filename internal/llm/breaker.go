package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig configures BreakerInvoker
type BreakerConfig struct {
	Name string
	// MaxRequests allowed through while half-open
	MaxRequests uint32
	// Interval after which closed-state counts are cleared
	Interval time.Duration
	// Timeout the breaker stays open before probing again
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the breaker
	FailureThreshold uint32
}

// BreakerInvoker decorates a ModelInvoker with a circuit breaker. While the
// breaker is open, calls fail immediately with a TransportError.
type BreakerInvoker struct {
	next    ModelInvoker
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerInvoker wraps next with a circuit breaker
func NewBreakerInvoker(next ModelInvoker, config BreakerConfig, logger *zap.Logger) *BreakerInvoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Name == "" {
		config.Name = "chat-model"
	}
	threshold := config.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BreakerInvoker{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Invoke implements the ModelInvoker interface
func (b *BreakerInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.Invoke(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", NewTransportError("circuit_breaker", "chat model circuit breaker is open", err)
		}
		return "", err
	}
	return result.(string), nil
}

// State returns the current breaker state name
func (b *BreakerInvoker) State() string {
	return b.breaker.State().String()
}
