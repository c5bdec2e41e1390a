package events

import (
	"go.uber.org/zap"
)

// RegisterAuditLog subscribes asynchronous handlers that write every
// generation and schema event to logger.
func RegisterAuditLog(bus EventBus, logger *zap.Logger) error {
	if err := bus.SubscribeAsync(TopicSQLGenerated, func(e SQLGenerated) {
		logger.Info("Audit event",
			zap.String("topic", TopicSQLGenerated),
			zap.String("correlation_id", e.CorrelationID),
			zap.String("dialect", e.Dialect),
			zap.Int("attempts", e.Attempts),
			zap.Int64("duration_ms", e.DurationMs),
			zap.String("sql", e.SQL))
	}); err != nil {
		return err
	}

	if err := bus.SubscribeAsync(TopicGenerationFailed, func(e GenerationFailed) {
		logger.Warn("Audit event",
			zap.String("topic", TopicGenerationFailed),
			zap.String("correlation_id", e.CorrelationID),
			zap.String("kind", e.Kind),
			zap.Int("retries", e.Retries),
			zap.Int64("duration_ms", e.DurationMs),
			zap.String("reason", e.Reason))
	}); err != nil {
		return err
	}

	return bus.SubscribeAsync(TopicSchemaChanged, func(e SchemaChanged) {
		logger.Info("Audit event",
			zap.String("topic", TopicSchemaChanged),
			zap.String("correlation_id", e.CorrelationID),
			zap.String("operation", e.Operation),
			zap.Strings("tables", e.Tables),
			zap.Int("table_count", e.TableCount))
	})
}
