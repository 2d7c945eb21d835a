// Package requestcontext carries per-request values through context.
package requestcontext

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	clientKey
)

// WithRequestID stores the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID, or "" when none was set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Client describes the software that sent the request.
type Client struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
}

// WithClient stores the parsed client description.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey, c)
}

// ClientFrom returns the parsed client description, if any.
func ClientFrom(ctx context.Context) (Client, bool) {
	c, ok := ctx.Value(clientKey).(Client)
	return c, ok
}
