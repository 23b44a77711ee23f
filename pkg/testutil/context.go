package testutil

import (
	"net/http"

	id "ticketledger/pkg/domain"
	"ticketledger/pkg/requestcontext"
)

// WithCaller adds an authenticated principal to the request context. This
// simulates what the auth middleware would do for authenticated requests.
func WithCaller(req *http.Request, principal string) *http.Request {
	ctx := requestcontext.WithCaller(req.Context(), id.Principal(principal))
	return req.WithContext(ctx)
}

// WithHeight pins the logical timestamp for the request.
func WithHeight(req *http.Request, height uint64) *http.Request {
	ctx := requestcontext.WithHeight(req.Context(), height)
	return req.WithContext(ctx)
}

// WithRequestID adds a request id to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}
