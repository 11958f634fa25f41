package flightrecorder_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/myrjola/fitcoach/internal/flightrecorder"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

func newService(t *testing.T, now *time.Time) (*flightrecorder.Service, string) {
	t.Helper()
	traceDir := filepath.Join(t.TempDir(), "traces")
	service, err := flightrecorder.New(flightrecorder.Config{
		Logger:          testhelpers.NewTestLogger(t),
		TracesDirectory: traceDir,
		Cooldown:        time.Minute,
		Now:             func() time.Time { return *now },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err = service.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { service.Stop(t.Context()) })
	return service, traceDir
}

func traceFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read trace directory: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNew_requiresConfig(t *testing.T) {
	if _, err := flightrecorder.New(flightrecorder.Config{TracesDirectory: t.TempDir()}); err == nil {
		t.Error("expected error without logger")
	}
	logger := testhelpers.NewTestLogger(t)
	if _, err := flightrecorder.New(flightrecorder.Config{Logger: logger}); err == nil {
		t.Error("expected error without traces directory")
	}
}

func TestService_Capture(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	service, _ := newService(t, &now)

	file := service.Capture(t.Context(), "timeout")
	if filepath.Base(file) != "timeout-20260302-100000.trace" {
		t.Errorf("Capture() = %q", file)
	}
	if stat, err := os.Stat(file); err != nil || stat.Size() == 0 {
		t.Errorf("trace file missing or empty: %v", err)
	}

	// Reasons are sanitised for the filename.
	if file = service.Capture(t.Context(), "Pose Stream/stall"); filepath.Base(file) != "pose-stream-stall-20260302-100000.trace" {
		t.Errorf("Capture() = %q", file)
	}
}

func TestService_cooldown(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	service, dir := newService(t, &now)

	if service.Capture(t.Context(), "timeout") == "" {
		t.Fatal("first capture skipped")
	}
	now = now.Add(30 * time.Second)
	if got := service.Capture(t.Context(), "timeout"); got != "" {
		t.Errorf("capture within cooldown wrote %s", got)
	}
	if service.Capture(t.Context(), "pose-stall") == "" {
		t.Error("cooldown should be tracked per reason")
	}
	now = now.Add(time.Minute)
	if service.Capture(t.Context(), "timeout") == "" {
		t.Error("capture after cooldown skipped")
	}
	if n := len(traceFiles(t, dir)); n != 3 {
		t.Errorf("got %d trace files, want 3", n)
	}
}

func TestService_nil(t *testing.T) {
	var service *flightrecorder.Service
	if service.Capture(t.Context(), "timeout") != "" {
		t.Error("nil service captured a trace")
	}
	service.Stop(t.Context())
}
