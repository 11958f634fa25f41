package contexthelpers

import (
	"context"
	"net/http"
)

// WithVisitorID returns ctx carrying the visitor ID. Services scope their repositories with it.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, VisitorIDContextKey, visitorID)
}

func SetVisitorID(r *http.Request, visitorID string) *http.Request {
	return r.WithContext(WithVisitorID(r.Context(), visitorID))
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, CurrentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, cspNonce string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, CspNonceContextKey, cspNonce)
	return r.WithContext(ctx)
}
