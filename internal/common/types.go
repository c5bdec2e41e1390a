package common

import (
	"context"

	"github.com/google/uuid"
)

// ID represents a unique identifier
type ID string

// NewID generates a new unique identifier
func NewID() ID {
	return ID(uuid.New().String())
}

// IsValid checks if the ID is a valid UUID
func (id ID) IsValid() bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}

// String returns the string representation of the ID
func (id ID) String() string {
	return string(id)
}

// RequestID identifies a single generation call across logs and events
type RequestID ID

// NewRequestID generates a new request identifier
func NewRequestID() RequestID {
	return RequestID(NewID())
}

type requestIDKey struct{}

// ContextWithRequestID attaches id to ctx
func ContextWithRequestID(ctx context.Context, id RequestID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID carried by ctx, or "" if none
func RequestIDFromContext(ctx context.Context) RequestID {
	if id, ok := ctx.Value(requestIDKey{}).(RequestID); ok {
		return id
	}
	return ""
}

// DefaultDialect is used when no SQL dialect is configured
const DefaultDialect = "MySql"
