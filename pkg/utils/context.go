package utils

import (
	"context"

	"media-review/internal/access"
)

type contextKey string

const callerKey contextKey = "caller"

// SetCallerContext stores the authenticated identity on the request context.
func SetCallerContext(ctx context.Context, caller *access.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCallerFromContext returns the authenticated identity, or nil for an
// anonymous request.
func GetCallerFromContext(ctx context.Context) *access.Caller {
	caller, ok := ctx.Value(callerKey).(*access.Caller)
	if !ok {
		return nil
	}
	return caller
}
