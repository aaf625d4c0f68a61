// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them; services and the notification
// dispatcher read them without importing net/http.
package requestcontext

import "context"

type requestIDKey struct{}

// RequestID retrieves the request correlation ID from the context, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request correlation ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
