package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
)

// SetRequestID stores the request correlation id in ctx.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestIDFromContext returns the id set by the request logger middleware.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(RequestIDKey)
	if val == nil {
		return "", false
	}

	id, ok := val.(string)
	return id, ok
}

// NewRequestID generates a fresh correlation id.
func NewRequestID() string {
	return uuid.New().String()
}
