package testhelpers

import (
	"io"
	"log/slog"
	"testing"

	"github.com/myrjola/fitcoach/internal/logging"
)

// NewLogger builds the application's debug level text logger on top of sink.
func NewLogger(sink io.Writer) *slog.Logger {
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(sink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	})))
}

// NewTestLogger is NewLogger writing to t.Log.
func NewTestLogger(t testing.TB) *slog.Logger {
	return NewLogger(NewWriter(t))
}
