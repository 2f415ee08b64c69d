package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type of context keys set by this package.
type ContextKey string

// TraceIDKey is the key for the trace ID in the request context
const TraceIDKey ContextKey = "traceID"

// SetTraceID adds a fresh random trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
