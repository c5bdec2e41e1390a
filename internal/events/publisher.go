package events

import (
	"fmt"

	"go.uber.org/zap"
)

// Publisher validates events before handing them to a bus. Publishing is
// best effort: failures are logged, never returned to the caller's flow.
// A Publisher with a nil bus discards everything.
type Publisher struct {
	eventBus EventBus
	logger   *zap.Logger
}

// NewPublisher creates a new Publisher instance
func NewPublisher(eventBus EventBus, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		eventBus: eventBus,
		logger:   logger,
	}
}

// Publish validates event and publishes it to topic
func (p *Publisher) Publish(topic string, event interface{}) {
	if p == nil || p.eventBus == nil {
		return
	}

	if err := ValidateEvent(event); err != nil {
		p.logger.Error("Refusing to publish invalid event",
			zap.String("topic", topic),
			zap.Error(err))
		return
	}

	if err := p.eventBus.Publish(topic, event); err != nil {
		p.logger.Warn("Failed to publish event",
			zap.String("topic", topic),
			zap.Error(err))
	}
}

// ValidateEvent ensures events carry their required fields
func ValidateEvent(event interface{}) error {
	switch e := event.(type) {
	case SQLGenerated:
		if e.CorrelationID == "" {
			return fmt.Errorf("SQLGenerated: CorrelationID is required")
		}
		if e.SQL == "" {
			return fmt.Errorf("SQLGenerated: SQL is required")
		}
	case GenerationFailed:
		if e.CorrelationID == "" {
			return fmt.Errorf("GenerationFailed: CorrelationID is required")
		}
		if e.Reason == "" {
			return fmt.Errorf("GenerationFailed: Reason is required")
		}
	case SchemaChanged:
		if e.CorrelationID == "" {
			return fmt.Errorf("SchemaChanged: CorrelationID is required")
		}
		if e.Operation == "" {
			return fmt.Errorf("SchemaChanged: Operation is required")
		}
	default:
		return fmt.Errorf("unknown event type %T", event)
	}
	return nil
}
