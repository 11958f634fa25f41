package testhelpers

import (
	"io"
	"strings"
	"sync"
	"testing"
)

// Writer forwards log output to t.Log so that it only shows up for failing tests.
type Writer struct {
	t        testing.TB
	mu       sync.Mutex
	finished bool
}

// NewWriter returns a Writer bound to t. Writing after t has finished panics, which catches servers that outlive
// their test.
func NewWriter(t testing.TB) io.Writer {
	w := &Writer{t: t, mu: sync.Mutex{}, finished: false}
	t.Cleanup(func() {
		w.mu.Lock()
		w.finished = true
		w.mu.Unlock()
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finished {
		panic("testhelpers: log written after the test finished, is the server shut down in t.Cleanup?")
	}
	for line := range strings.Lines(string(p)) {
		if line = strings.TrimRight(line, "\n"); line != "" {
			w.t.Log(line)
		}
	}
	return len(p), nil
}
