package performance

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/myrjola/fitcoach/internal/coach"
	"github.com/myrjola/fitcoach/internal/contexthelpers"
	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/myrjola/fitcoach/internal/pose"
	"github.com/myrjola/fitcoach/internal/sqlite"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

// Performance test for 100 concurrent visitors.
// Every visitor saves a profile, completes a day, stores a pose session and reads everything back.
func TestService_ConcurrentVisitors(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	ctx := t.Context()
	logger := testhelpers.NewTestLogger(t)
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})
	service := coach.NewService(db, logger, plan.NewCache(0), nil)

	const numVisitors = 100
	var (
		wg       sync.WaitGroup
		failures atomic.Int64
		levels   = plan.Levels()
		goals    = plan.Goals()
		start    = time.Now()
	)
	for i := range numVisitors {
		wg.Go(func() {
			vctx := contexthelpers.WithVisitorID(ctx, fmt.Sprintf("visitor-%03d", i))
			profile := coach.Profile{
				Name:     fmt.Sprintf("Visitor %d", i),
				Age:      20 + i%50,
				Gender:   coach.Genders()[i%len(coach.Genders())],
				HeightCm: float64(150 + i%50),
				WeightKg: float64(50 + i%70),
				Level:    levels[i%len(levels)],
				Goal:     goals[i%len(goals)],
			}
			stored, err := service.SaveProfile(vctx, profile)
			if err != nil {
				failures.Add(1)
				t.Errorf("visitor %d: SaveProfile() error = %v", i, err)
				return
			}
			monday, _ := stored.Week.Day(time.Monday)
			if _, err = service.MarkDayComplete(vctx, monday.Weekday); err != nil {
				failures.Add(1)
				t.Errorf("visitor %d: MarkDayComplete() error = %v", i, err)
				return
			}
			snapshot := pose.Snapshot{Exercise: pose.Squats, Reps: 1 + i%10, CorrectReps: i % 10} //nolint:exhaustruct // summary only.
			if err = service.SavePoseSummary(vctx, snapshot); err != nil {
				failures.Add(1)
				t.Errorf("visitor %d: SavePoseSummary() error = %v", i, err)
				return
			}
			tracker, err := service.Progress(vctx)
			if err != nil {
				failures.Add(1)
				t.Errorf("visitor %d: Progress() error = %v", i, err)
				return
			}
			if tracker.WorkoutsCompleted != 1 {
				t.Errorf("visitor %d: WorkoutsCompleted = %d, want 1", i, tracker.WorkoutsCompleted)
			}
		})
	}
	wg.Wait()

	duration := time.Since(start)
	t.Logf("%d visitors in %v, %d failures", numVisitors, duration, failures.Load())
	if duration > 30*time.Second {
		t.Errorf("concurrent visitors took %v, want under 30s", duration)
	}
}
