package logging

import (
	"context"
	"fmt"
	"log/slog"
)

type contextKey string

const slogAttrs contextKey = "slogAttrs"

// ContextHandler decorates an [slog.Handler] with attributes carried in [context.Context].
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler wraps h so that every record is enriched with the attributes added to the context with
// [WithAttrs].
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{handler: h}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle adds the context attributes to r and passes it on.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(Attrs(ctx)...)
	if err := h.handler.Handle(ctx, r); err != nil {
		return fmt.Errorf("handle log record: %w", err)
	}
	return nil
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}

// WithAttrs returns a copy of ctx whose log records handled by [ContextHandler] include attr.
func WithAttrs(ctx context.Context, attr ...slog.Attr) context.Context {
	existing := Attrs(ctx)
	merged := make([]slog.Attr, 0, len(existing)+len(attr))
	merged = append(merged, existing...)
	merged = append(merged, attr...)
	return context.WithValue(ctx, slogAttrs, merged)
}

// Attrs returns the attributes stored in ctx.
func Attrs(ctx context.Context) []slog.Attr {
	if v, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		return v
	}
	return nil
}

// Detach returns a context that keeps the log attributes and values of ctx but is never cancelled.
//
// Use it for work that has to finish after the request that started it, such as persisting the summary of a
// closed websocket stream.
func Detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
