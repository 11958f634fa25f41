// Package flightrecorder keeps a rolling execution trace in memory and writes it to disk when a request misbehaves,
// for example when a page times out or a pose stream stalls.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime/trace"
	"strings"
	"sync"
	"time"

	"github.com/myrjola/fitcoach/internal/errors"
)

const (
	defaultMinAge   = 5 * time.Minute
	defaultMaxBytes = 64 * 1024 * 1024
	defaultCooldown = 30 * time.Minute
)

//nolint:gochecknoglobals // compiled once.
var unsafeReason = regexp.MustCompile(`[^a-z0-9-]+`)

// Config configures the flight recorder service.
type Config struct {
	Logger *slog.Logger
	// TracesDirectory receives the trace files. It is created when missing.
	TracesDirectory string
	// MinAge and MaxBytes bound the in-memory trace window. Zero values use defaults.
	MinAge   time.Duration
	MaxBytes uint64
	// Cooldown is the minimum time between two captures of the same reason.
	Cooldown time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service manages flight recording. A nil *Service is valid and captures nothing.
type Service struct {
	logger          *slog.Logger
	recorder        *trace.FlightRecorder
	tracesDirectory string
	cooldown        time.Duration
	now             func() time.Time

	mu           sync.Mutex
	lastCaptures map[string]time.Time
}

// New creates a flight recorder service. Call Start to begin recording.
func New(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.TracesDirectory == "" {
		return nil, errors.New("traces directory is required")
	}
	if err := os.MkdirAll(cfg.TracesDirectory, 0o700); err != nil { //nolint:mnd // owner only
		return nil, errors.Wrap(err, "create traces directory",
			slog.String("dir", cfg.TracesDirectory))
	}
	if stat, err := os.Stat(cfg.TracesDirectory); err != nil || !stat.IsDir() {
		return nil, errors.New("traces path is not a directory", slog.String("dir", cfg.TracesDirectory))
	}

	minAge := cfg.MinAge
	if minAge == 0 {
		minAge = defaultMinAge
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}
	cooldown := cfg.Cooldown
	if cooldown == 0 {
		cooldown = defaultCooldown
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		logger:          cfg.Logger,
		recorder:        trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: minAge, MaxBytes: maxBytes}),
		tracesDirectory: cfg.TracesDirectory,
		cooldown:        cooldown,
		now:             now,
		mu:              sync.Mutex{},
		lastCaptures:    make(map[string]time.Time),
	}, nil
}

// Start begins flight recording.
func (s *Service) Start(ctx context.Context) error {
	if err := s.recorder.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("dir", s.tracesDirectory),
		slog.Duration("cooldown", s.cooldown))
	return nil
}

// Stop ends flight recording.
func (s *Service) Stop(ctx context.Context) {
	if s == nil {
		return
	}
	s.recorder.Stop()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Capture writes the recorded trace to <reason>-<timestamp>.trace and returns the file path. Captures of the same
// reason within the cooldown are skipped and return an empty path.
func (s *Service) Capture(ctx context.Context, reason string) string {
	if s == nil {
		return ""
	}
	reason = unsafeReason.ReplaceAllString(strings.ToLower(reason), "-")
	now := s.now()

	s.mu.Lock()
	last, ok := s.lastCaptures[reason]
	if ok && now.Sub(last) < s.cooldown {
		s.mu.Unlock()
		s.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture due to cooldown",
			slog.String("reason", reason),
			slog.Duration("remaining", s.cooldown-now.Sub(last)))
		return ""
	}
	s.lastCaptures[reason] = now
	s.mu.Unlock()

	fPath := filepath.Join(s.tracesDirectory, fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format("20060102-150405")))
	if err := s.write(fPath); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to capture trace", errors.SlogError(err))
		return ""
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace",
		slog.String("reason", reason),
		slog.String("file", fPath))
	return fPath
}

func (s *Service) write(fPath string) (err error) {
	file, err := os.Create(fPath)
	if err != nil {
		return errors.Wrap(err, "create trace file", slog.String("file", fPath))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close trace file"))
		}
	}()
	if _, err = s.recorder.WriteTo(file); err != nil {
		return errors.Wrap(err, "write trace", slog.String("file", fPath))
	}
	return nil
}
