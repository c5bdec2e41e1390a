package events

import (
	"errors"
	"sync"

	eventbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// ErrBusClosed is returned by every operation on a closed bus
var ErrBusClosed = errors.New("event bus is closed")

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	Publish(topic string, data interface{}) error
	Subscribe(topic string, handler interface{}) error
	// SubscribeAsync runs handler on its own goroutine per event; Close waits for them
	SubscribeAsync(topic string, handler interface{}) error
	Unsubscribe(topic string, handler interface{}) error
	Close() error
}

// eventBus wraps the EventBus library with logging and a closed state
type eventBus struct {
	bus    eventbus.Bus
	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
}

// NewEventBus creates a new event bus instance
func NewEventBus(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &eventBus{
		bus:    eventbus.New(),
		logger: logger,
	}
}

// Publish publishes an event to the specified topic
func (eb *eventBus) Publish(topic string, data interface{}) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return ErrBusClosed
	}

	if !eb.bus.HasCallback(topic) {
		eb.logger.Debug("No subscribers for topic", zap.String("topic", topic))
		return nil
	}

	eb.logger.Debug("Publishing event", zap.String("topic", topic))
	eb.bus.Publish(topic, data)
	return nil
}

// Subscribe subscribes to events on the specified topic
func (eb *eventBus) Subscribe(topic string, handler interface{}) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return ErrBusClosed
	}

	eb.logger.Debug("Subscribing to topic", zap.String("topic", topic))
	return eb.bus.Subscribe(topic, handler)
}

// SubscribeAsync subscribes a non-transactional asynchronous handler
func (eb *eventBus) SubscribeAsync(topic string, handler interface{}) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return ErrBusClosed
	}

	eb.logger.Debug("Subscribing asynchronously to topic", zap.String("topic", topic))
	return eb.bus.SubscribeAsync(topic, handler, false)
}

// Unsubscribe unsubscribes from events on the specified topic
func (eb *eventBus) Unsubscribe(topic string, handler interface{}) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return ErrBusClosed
	}

	eb.logger.Debug("Unsubscribing from topic", zap.String("topic", topic))
	return eb.bus.Unsubscribe(topic, handler)
}

// Close drains asynchronous handlers and rejects further use
func (eb *eventBus) Close() error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return nil
	}

	eb.logger.Info("Closing event bus")
	eb.closed = true
	eb.bus.WaitAsync()

	return nil
}
