package main

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/trace"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/fitcoach/internal/contexthelpers"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/logging"
)

const visitorIDSessionKey = "visitor_id"

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
		headerWritten:  false,
	}
}

func (mw *statusResponseWriter) WriteHeader(statusCode int) {
	mw.ResponseWriter.WriteHeader(statusCode)

	if !mw.headerWritten {
		mw.statusCode = statusCode
		mw.headerWritten = true
	}
}

func (mw *statusResponseWriter) Write(b []byte) (int, error) {
	mw.headerWritten = true
	written, err := mw.ResponseWriter.Write(b)
	if err != nil {
		return written, fmt.Errorf("write response: %w", err)
	}
	return written, nil
}

func (mw *statusResponseWriter) Unwrap() http.ResponseWriter {
	return mw.ResponseWriter
}

// Hijack lets the pose websocket take over the connection.
func (mw *statusResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(mw.ResponseWriter).Hijack()
	if err != nil {
		return nil, nil, fmt.Errorf("hijack: %w", err)
	}
	mw.statusCode = http.StatusSwitchingProtocols
	mw.headerWritten = true
	return conn, rw, nil
}

// Flush lets the MCP handler stream responses.
func (mw *statusResponseWriter) Flush() {
	_ = http.NewResponseController(mw.ResponseWriter).Flush()
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The nonce goes into the context so that templates can add it to script and style tags.
		cspNonce := rand.Text()
		// The pose page loads the MediaPipe runtime and model from their CDNs.
		csp := fmt.Sprintf(`default-src 'none';
script-src 'nonce-%s' 'strict-dynamic' 'wasm-unsafe-eval' https: http:;
connect-src 'self' https://cdn.jsdelivr.net https://storage.googleapis.com;
img-src 'self' data:;
media-src 'self' blob:;
worker-src 'self' blob:;
style-src 'nonce-%s' 'self';
frame-ancestors 'self';
form-action 'self';
font-src 'none';
object-src 'none';
manifest-src 'self';
base-uri 'none';
report-uri /api/csp-violation;
report-to csp-endpoint;`, cspNonce, cspNonce)

		w.Header().Set("Content-Security-Policy", csp)
		w.Header().Set("Reporting-Endpoints", `csp-endpoint="/api/csp-violation"`)
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Permissions-Policy", "camera=(self), microphone=(), geolocation=()")
		w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")

		r = contexthelpers.SetCSPNonce(r, cspNonce)

		next.ServeHTTP(w, r)
	})
}

func cacheForever(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

		next.ServeHTTP(w, r)
	})
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logAndTraceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		ctx := r.Context()
		traceID := rand.Text()
		ctx = logging.WithAttrs(
			ctx,
			slog.Any("trace_id", traceID),
			slog.String("proto", proto),
			slog.String("method", method),
			slog.String("uri", uri),
		)
		r = r.WithContext(ctx)

		start := time.Now()
		app.logger.LogAttrs(ctx, slog.LevelDebug, "received request")

		sw := newStatusResponseWriter(w)

		if !trace.IsEnabled() {
			next.ServeHTTP(sw, r)
		} else {
			path := r.URL.Path
			traceCtx, task := trace.NewTask(ctx, fmt.Sprintf("HTTP %s %s", r.Method, path))

			trace.Log(traceCtx, "request", fmt.Sprintf("method=%s path=%s proto=%s", method, path, proto))
			trace.Log(traceCtx, "trace_id", traceID)

			defer func() {
				trace.Log(traceCtx, "response", fmt.Sprintf("status=%d duration=%v", sw.statusCode, time.Since(start)))
				task.End()
			}()

			r = r.WithContext(traceCtx)
			next.ServeHTTP(sw, r)
		}

		level := slog.LevelInfo
		if sw.statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		app.logger.LogAttrs(r.Context(), level, "request completed",
			slog.Int("status_code", sw.statusCode), slog.Duration("duration", time.Since(start)))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if excp := recover(); excp != nil {
				app.serverError(w, r, errors.DecoratePanic(excp))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = contexthelpers.SetCurrentPath(r, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// crossOriginProtection rejects cross-origin form posts using Go's CrossOriginProtection.
func (app *application) crossOriginProtection(next http.Handler) http.Handler {
	protection := http.NewCrossOriginProtection()
	return protection.Handler(next)
}

// visitor attaches the anonymous visitor ID stored in the session, creating one on the first visit.
// It must run inside sessionManager.LoadAndSave.
func (app *application) visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		visitorID := app.sessionManager.GetString(ctx, visitorIDSessionKey)
		if visitorID == "" {
			visitorID = uuid.NewString()
			app.sessionManager.Put(ctx, visitorIDSessionKey, visitorID)
			app.logger.LogAttrs(ctx, slog.LevelDebug, "new visitor", slog.String("visitor_id", visitorID))
		}
		ctx = logging.WithAttrs(ctx, slog.String("visitor_id", visitorID))
		r = contexthelpers.SetVisitorID(r.WithContext(ctx), visitorID)
		next.ServeHTTP(w, r)
	})
}

// streamVisitor resolves the visitor of a websocket request from the session cookie without wrapping the response
// writer. Requests without a session proceed anonymously.
func (app *application) streamVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(app.sessionManager.Cookie.Name)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx, err := app.sessionManager.Load(r.Context(), cookie.Value)
		if err != nil {
			app.serverError(w, r, errors.Wrap(err, "load session"))
			return
		}
		if visitorID := app.sessionManager.GetString(ctx, visitorIDSessionKey); visitorID != "" {
			ctx = logging.WithAttrs(ctx, slog.String("visitor_id", visitorID))
			r = contexthelpers.SetVisitorID(r.WithContext(ctx), visitorID)
		}
		next.ServeHTTP(w, r)
	})
}

// timeout times out the request and cancels the context using http.TimeoutHandler. A timed out request captures an
// execution trace when the flight recorder is enabled.
func (app *application) timeout(next http.Handler) http.Handler {
	handler := http.TimeoutHandler(next, defaultTimeout-200*time.Millisecond, timeoutBody) //nolint:mnd // writing the response takes time.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := newStatusResponseWriter(w)
		handler.ServeHTTP(sw, r)
		if sw.statusCode == http.StatusServiceUnavailable {
			app.logger.LogAttrs(r.Context(), slog.LevelWarn, "request timed out")
			app.flightRecorder.Capture(r.Context(), "timeout")
		}
	})
}
