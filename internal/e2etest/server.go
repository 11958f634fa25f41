package e2etest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/myrjola/fitcoach/internal/logging"
)

// LogAddrKey is the log attribute carrying the address the server listens on. StartServer waits for it.
const LogAddrKey = "addr"

// RunFunc has the signature of the web application's run function.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

// Server is an application instance running inside a test.
type Server struct {
	url    string
	client *Client
	stop   context.CancelCauseFunc
	done   chan struct{}
}

// StartServer runs the application in the background and returns once /api/healthy answers.
//
// Logs go to logSink, usually testhelpers.NewWriter. The listening address is picked up from the LogAddrKey log
// attribute, so lookupEnv can ask for a dynamic port with localhost:0. The server is shut down when t finishes.
func StartServer(t testing.TB, logSink io.Writer, lookupEnv func(string) (string, bool), run RunFunc) (*Server, error) {
	ctx, stop := context.WithCancelCause(t.Context())
	done := make(chan struct{})
	addrCh := make(chan string, 1)

	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == LogAddrKey {
				select {
				case addrCh <- a.Value.String():
				default:
				}
			}
			return a
		},
	})))

	go func() {
		defer close(done)
		if err := run(ctx, logger, lookupEnv); err != nil {
			stop(err)
		}
	}()
	server := &Server{url: "", client: nil, stop: stop, done: done}
	t.Cleanup(server.Shutdown)

	var addr string
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("server stopped before listening: %w", context.Cause(ctx))
	case addr = <-addrCh:
	}

	client, err := NewClient("http://" + addr)
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return nil, fmt.Errorf("wait for ready: %w", err)
	}
	server.url = "http://" + addr
	server.client = client
	return server, nil
}

// Client returns a client with its own cookie jar, so it acts as one visitor.
func (s *Server) Client() *Client {
	return s.client
}

// URL is the server's base URL without a trailing slash.
func (s *Server) URL() string {
	return s.url
}

// Shutdown stops the server and waits for run to return. It is safe to call more than once.
func (s *Server) Shutdown() {
	s.stop(nil)
	<-s.done
}
