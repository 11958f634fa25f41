package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/myrjola/fitcoach/internal/contexthelpers"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

type timeoutResponseWriter struct {
	httptest.ResponseRecorder
}

func newTimeoutResponseWriter() *timeoutResponseWriter {
	return &timeoutResponseWriter{
		ResponseRecorder: *httptest.NewRecorder(),
	}
}

// SetWriteDeadline is needed to not get "feature not implemented" error.
func (w *timeoutResponseWriter) SetWriteDeadline(_ time.Time) error {
	return nil
}

func Test_application_timeout(t *testing.T) {
	tests := []struct {
		name     string
		sleepMS  int
		timesOut bool
	}{
		{
			name:     "completes within timeout",
			sleepMS:  500,
			timesOut: false,
		},
		{
			name:     "times out",
			sleepMS:  3000,
			timesOut: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				app := &application{ //nolint:exhaustruct // this is a test
					logger: testhelpers.NewLogger(io.Discard),
				}
				handler := app.logAndTraceRequest(app.timeout(http.HandlerFunc(app.testTimeout)))

				url := fmt.Sprintf("/api/test/timeout?sleep_ms=%d", tt.sleepMS)
				req := httptest.NewRequest(http.MethodGet, url, nil)
				w := newTimeoutResponseWriter()

				handler.ServeHTTP(w, req)

				if tt.timesOut {
					if w.Code != http.StatusServiceUnavailable {
						t.Errorf("Expected status 503 on timeout, got %d", w.Code)
					}
					if !strings.Contains(w.Body.String(), "took too long") {
						t.Errorf("Expected timeout message in response body, got: %s", w.Body.String())
					}
				} else if w.Code != http.StatusOK {
					t.Errorf("Expected status 200, got %d", w.Code)
				}
			})
		})
	}
}

func Test_secureHeaders(t *testing.T) {
	var nonce string
	handler := secureHeaders(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		nonce = contexthelpers.CSPNonce(r.Context())
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if nonce == "" {
		t.Fatal("nonce missing from context")
	}
	csp := w.Header().Get("Content-Security-Policy")
	for _, want := range []string{"'nonce-" + nonce + "'", "report-uri /api/csp-violation", "media-src 'self' blob:"} {
		if !strings.Contains(csp, want) {
			t.Errorf("Content-Security-Policy lacks %q", want)
		}
	}
	if got := w.Header().Get("Permissions-Policy"); !strings.Contains(got, "camera=(self)") {
		t.Errorf("Permissions-Policy = %q", got)
	}
}

func Test_statusResponseWriter_hijack(t *testing.T) {
	sw := newStatusResponseWriter(httptest.NewRecorder())
	if _, _, err := sw.Hijack(); err == nil {
		t.Error("hijacking a recorder should fail")
	}
}
