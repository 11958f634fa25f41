package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/myrjola/fitcoach/internal/e2etest"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/logging"
	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/myrjola/fitcoach/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	scenarioTimeout      = 30 * time.Second
	maxConcurrentVisits  = 20
	successRateThreshold = 95.0
	expectedArgsCount    = 3
	percentageMultiplier = 100
)

// VisitorScenario walks through the app as a new visitor: profile, plan, completing today's workout, progress and a
// download.
func VisitorScenario(ctx context.Context, url string, rng *rand.Rand) error {
	ctx, cancel := context.WithTimeout(ctx, scenarioTimeout)
	defer cancel()

	client, err := e2etest.NewClient(url)
	if err != nil {
		return fmt.Errorf("new client: %w", err)
	}
	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get home: %w", err)
	}
	levels, goals := plan.Levels(), plan.Goals()
	fields := map[string]string{
		"Name":          "Visitor " + strconv.Itoa(rng.IntN(10_000)), //nolint:mnd // arbitrary.
		"Height (cm)":   strconv.Itoa(150 + rng.IntN(50)),           //nolint:mnd // 150-199 cm.
		"Weight (kg)":   strconv.Itoa(50 + rng.IntN(70)),            //nolint:mnd // 50-119 kg.
		"Fitness level": string(levels[rng.IntN(len(levels))]),
		"Goal":          string(goals[rng.IntN(len(goals))]),
	}
	if doc, err = client.SubmitForm(ctx, doc, "/profile", fields); err != nil {
		return fmt.Errorf("submit profile: %w", err)
	}

	action := "/plan/" + strings.ToLower(time.Now().Weekday().String()) + "/complete"
	if _, err = e2etest.FindForm(doc, action); err == nil {
		if _, err = client.SubmitForm(ctx, doc, action, nil); err != nil {
			return fmt.Errorf("complete day: %w", err)
		}
	}
	if _, err = client.GetDoc(ctx, "/progress"); err != nil {
		return fmt.Errorf("get progress: %w", err)
	}
	if _, _, err = client.GetBody(ctx, "/export/plan.xlsx"); err != nil {
		return fmt.Errorf("download plan: %w", err)
	}
	return nil
}

// RunLoadTest runs numVisitors scenarios with bounded concurrency and fails when too many of them fail.
func RunLoadTest(ctx context.Context, url string, numVisitors int, logger *slog.Logger) error {
	var (
		succeeded atomic.Int64
		failed    atomic.Int64
		start     = time.Now()
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentVisits)
	for i := range numVisitors {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(uint64(i), uint64(start.UnixNano()))) //nolint:gosec // load test data.
			if err := VisitorScenario(ctx, url, rng); err != nil {
				failed.Add(1)
				logger.LogAttrs(ctx, slog.LevelWarn, "scenario failed", slog.Int("visitor", i), errors.SlogError(err))
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("wait for scenarios: %w", err)
	}

	rate := float64(succeeded.Load()) * percentageMultiplier / float64(max(numVisitors, 1))
	logger.LogAttrs(ctx, slog.LevelInfo, "load test finished",
		slog.Int64("succeeded", succeeded.Load()),
		slog.Int64("failed", failed.Load()),
		slog.Float64("success_rate", rate),
		slog.Duration("duration", time.Since(start)))
	if rate < successRateThreshold {
		return errors.New("success rate below threshold", slog.Float64("success_rate", rate))
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname> <visitors>")
		os.Exit(1)
	}
	hostname := os.Args[1]
	numVisitors, err := strconv.Atoi(os.Args[2])
	if err != nil || numVisitors <= 0 {
		logger.LogAttrs(ctx, slog.LevelError, "visitors must be a positive number")
		os.Exit(1)
	}
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", errors.SlogError(err))
		os.Exit(1)
	}
	if err = RunLoadTest(ctx, url, numVisitors, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", errors.SlogError(err))
		os.Exit(1)
	}
}
