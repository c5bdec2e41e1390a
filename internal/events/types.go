package events

import (
	"time"

	"github.com/google/uuid"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// NewEventWithID creates a base event that reuses an existing request ID
func NewEventWithID(correlationID string) Event {
	if correlationID == "" {
		return NewEvent()
	}
	return Event{
		CorrelationID: correlationID,
		Timestamp:     time.Now(),
	}
}

// SQLGenerated is published when a question produced a validated SELECT statement
type SQLGenerated struct {
	Event
	Question   string `json:"question"`
	SQL        string `json:"sql"`
	Dialect    string `json:"dialect"`
	Attempts   int    `json:"attempts"`
	DurationMs int64  `json:"duration_ms"`
}

// GenerationFailed is published when every attempt for a question failed
type GenerationFailed struct {
	Event
	Question   string `json:"question"`
	Reason     string `json:"reason"`
	Kind       string `json:"kind"`
	Retries    int    `json:"retries"`
	DurationMs int64  `json:"duration_ms"`
}

// SchemaChanged is published after every catalog mutation
type SchemaChanged struct {
	Event
	Operation  string   `json:"operation"`
	Tables     []string `json:"tables,omitempty"`
	TableCount int      `json:"table_count"`
}

// Schema operations carried by SchemaChanged
const (
	SchemaOpCache         = "cache"
	SchemaOpCacheAll      = "cache_all"
	SchemaOpClear         = "clear"
	SchemaOpRefresh       = "refresh"
	SchemaOpRefreshSingle = "refresh_single"
)

// Event topics constants
const (
	TopicSQLGenerated     = "sql.generated"
	TopicGenerationFailed = "sql.generation_failed"
	TopicSchemaChanged    = "schema.changed"
)
