// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are typically set by middleware and consumed by services. Keeping
// this package free of net/http dependencies lets services import only what
// they need.
//
// Usage in services (read values):
//
//	caller := requestcontext.Caller(ctx)
//	requestID := requestcontext.RequestID(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithCaller(ctx, "ST1TEST")
//	ctx = requestcontext.WithHeight(ctx, 42)
package requestcontext

import (
	"context"

	id "ticketledger/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	callerKey    struct{}
	requestIDKey struct{}
	heightKey    struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyCaller    = callerKey{}
	ContextKeyRequestID = requestIDKey{}
	ContextKeyHeight    = heightKey{}
)

// Caller retrieves the authenticated caller principal from the context.
// Returns the zero principal if not set.
func Caller(ctx context.Context) id.Principal {
	if p, ok := ctx.Value(ContextKeyCaller).(id.Principal); ok {
		return p
	}
	return ""
}

// WithCaller injects a caller principal into the context.
func WithCaller(ctx context.Context, caller id.Principal) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, caller)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Height retrieves a request-scoped logical clock value. The second return
// reports whether one was set; when absent the engine reads its own clock.
func Height(ctx context.Context) (uint64, bool) {
	h, ok := ctx.Value(ContextKeyHeight).(uint64)
	return h, ok
}

// WithHeight pins a logical clock value for the duration of a request.
// Useful for tests and batch replays that need a deterministic timestamp.
func WithHeight(ctx context.Context, height uint64) context.Context {
	return context.WithValue(ctx, ContextKeyHeight, height)
}
