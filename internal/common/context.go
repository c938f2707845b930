package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyOfficeID  contextKey = "office_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithOfficeID adds an office ID to the context
func WithOfficeID(ctx context.Context, officeID string) context.Context {
	return context.WithValue(ctx, ContextKeyOfficeID, officeID)
}

// OfficeIDFromContext extracts the office ID from context
func OfficeIDFromContext(ctx context.Context) string {
	if officeID, ok := ctx.Value(ContextKeyOfficeID).(string); ok {
		return officeID
	}
	return ""
}
