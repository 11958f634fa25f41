package contexthelpers

import (
	"context"
)

// VisitorID returns the anonymous visitor ID attached by the session middleware or an empty string.
func VisitorID(ctx context.Context) string {
	visitorID, ok := ctx.Value(VisitorIDContextKey).(string)
	if !ok {
		return ""
	}

	return visitorID
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(CspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}
