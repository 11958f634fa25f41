package coach_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitcoach/internal/coach"
	"github.com/myrjola/fitcoach/internal/contexthelpers"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/myrjola/fitcoach/internal/pose"
	"github.com/myrjola/fitcoach/internal/sqlite"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newService(t *testing.T) (*coach.Service, *clock) {
	t.Helper()
	logger := testhelpers.NewTestLogger(t)
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	c := &clock{now: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)}
	return coach.NewService(db, logger, plan.NewCache(0), c.Now), c
}

func visitor(t *testing.T, id string) context.Context {
	t.Helper()
	return contexthelpers.WithVisitorID(t.Context(), id)
}

func validProfile() coach.Profile {
	return coach.Profile{
		Name:     "Alex",
		Age:      30,
		Gender:   coach.Other,
		HeightCm: 175,
		WeightKg: 67.4,
		Level:    plan.Beginner,
		Goal:     plan.MuscleBuilding,
	}
}

func TestService_SaveProfile(t *testing.T) {
	t.Parallel()
	svc, c := newService(t)
	ctx := visitor(t, "v1")

	if _, err := svc.Plan(ctx); !errors.Is(err, coach.ErrNotFound) {
		t.Fatalf("Plan() before profile error = %v, want ErrNotFound", err)
	}

	saved, err := svc.SaveProfile(ctx, validProfile())
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	want, err := plan.Generate(plan.Beginner, plan.MuscleBuilding, 22.0, fitness.Normal)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if diff := cmp.Diff(want.Days(), saved.Week.Days()); diff != "" {
		t.Errorf("saved plan mismatch (-want +got):\n%s", diff)
	}

	stored, err := svc.Plan(ctx)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if diff := cmp.Diff(want.Days(), stored.Week.Days()); diff != "" {
		t.Errorf("stored plan mismatch (-want +got):\n%s", diff)
	}
	if !stored.Generated.Equal(c.now) {
		t.Errorf("Generated = %v, want %v", stored.Generated, c.now)
	}

	profile, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if diff := cmp.Diff(validProfile(), profile); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}

	tracker, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if tracker.TotalWorkouts != 5 || tracker.WorkoutsCompleted != 0 {
		t.Errorf("tracker = %+v, want 5 total workouts and none completed", tracker)
	}

	if _, err = svc.Profile(visitor(t, "v2")); !errors.Is(err, coach.ErrNotFound) {
		t.Errorf("other visitor sees the profile, error = %v", err)
	}
}

func TestService_SaveProfileValidation(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := visitor(t, "v1")

	p := validProfile()
	p.Age = 12
	p.Goal = "Yoga"
	p.Gender = ""
	_, err := svc.SaveProfile(ctx, p)

	var validationErrs fitness.ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("SaveProfile() error = %v, want ValidationErrors", err)
	}
	want := fitness.ValidationErrors{
		"age":    "Age must be between 16 and 100",
		"goal":   "Please select a goal",
		"gender": "Please select a gender",
	}
	if diff := cmp.Diff(want, validationErrs); diff != "" {
		t.Errorf("validation errors mismatch (-want +got):\n%s", diff)
	}
	if _, err = svc.Profile(ctx); !errors.Is(err, coach.ErrNotFound) {
		t.Errorf("invalid profile was stored, error = %v", err)
	}

	if _, err = svc.SaveProfile(t.Context(), validProfile()); !errors.Is(err, coach.ErrNoVisitor) {
		t.Errorf("SaveProfile() without visitor error = %v, want ErrNoVisitor", err)
	}
}

func TestService_MarkDayComplete(t *testing.T) {
	t.Parallel()
	svc, c := newService(t)
	ctx := visitor(t, "v1")

	if _, err := svc.MarkDayComplete(ctx, time.Monday); !errors.Is(err, coach.ErrNotFound) {
		t.Fatalf("MarkDayComplete() without plan error = %v, want ErrNotFound", err)
	}
	if _, err := svc.SaveProfile(ctx, validProfile()); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	completed, err := svc.MarkDayComplete(ctx, time.Monday)
	if err != nil || !completed {
		t.Fatalf("MarkDayComplete() = %v, %v, want true", completed, err)
	}
	if completed, err = svc.MarkDayComplete(ctx, time.Monday); err != nil || completed {
		t.Errorf("second MarkDayComplete() = %v, %v, want false", completed, err)
	}
	if _, err = svc.MarkDayComplete(ctx, time.Wednesday); !errors.Is(err, coach.ErrRestDay) {
		t.Errorf("MarkDayComplete() on rest day error = %v, want ErrRestDay", err)
	}

	c.now = c.now.AddDate(0, 0, 1)
	if _, err = svc.MarkDayComplete(ctx, time.Tuesday); err != nil {
		t.Fatalf("MarkDayComplete() error = %v", err)
	}

	tracker, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if tracker.WorkoutsCompleted != 2 || tracker.StreakDays != 2 {
		t.Errorf("tracker = %+v, want 2 workouts and a 2 day streak", tracker)
	}
	if got := tracker.CompletionRate(); got != 40 {
		t.Errorf("CompletionRate() = %v, want 40", got)
	}

	// A new profile starts a new plan.
	if _, err = svc.SaveProfile(ctx, validProfile()); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if tracker, err = svc.Progress(ctx); err != nil || tracker.WorkoutsCompleted != 0 {
		t.Errorf("progress after new plan = %+v, %v", tracker, err)
	}
}

func TestService_PoseSummaries(t *testing.T) {
	t.Parallel()
	svc, c := newService(t)
	ctx := visitor(t, "v1")

	if err := svc.SavePoseSummary(ctx, pose.Snapshot{Exercise: pose.Squats}); err != nil {
		t.Fatalf("SavePoseSummary() error = %v", err)
	}
	if err := svc.SavePoseSummary(ctx, pose.Snapshot{Exercise: pose.Squats, Reps: 10, CorrectReps: 7}); err != nil {
		t.Fatalf("SavePoseSummary() error = %v", err)
	}
	first := c.now
	c.now = c.now.Add(time.Hour)
	if err := svc.SavePoseSummary(ctx, pose.Snapshot{Exercise: pose.PushUps, Reps: 4, CorrectReps: 4}); err != nil {
		t.Fatalf("SavePoseSummary() error = %v", err)
	}

	got, err := svc.PoseSummaries(ctx, 10)
	if err != nil {
		t.Fatalf("PoseSummaries() error = %v", err)
	}
	want := []coach.PoseSummary{
		{Exercise: pose.PushUps, Reps: 4, CorrectReps: 4, Finished: c.now},
		{Exercise: pose.Squats, Reps: 10, CorrectReps: 7, Finished: first},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PoseSummaries() mismatch (-want +got):\n%s", diff)
	}
	if got[1].Accuracy() != 70 {
		t.Errorf("Accuracy() = %v, want 70", got[1].Accuracy())
	}
}

func TestService_DeleteVisitor(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := visitor(t, "v1")

	if _, err := svc.SaveProfile(ctx, validProfile()); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := svc.SavePoseSummary(ctx, pose.Snapshot{Exercise: pose.Squats, Reps: 3, CorrectReps: 3}); err != nil {
		t.Fatalf("SavePoseSummary() error = %v", err)
	}

	path, err := svc.ExportVisitorData(ctx, t.TempDir())
	if err != nil || path == "" {
		t.Fatalf("ExportVisitorData() = %q, %v", path, err)
	}

	doc, err := svc.Document(ctx)
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Name != "Alex" || doc.BMI != 22.0 || doc.Category != fitness.Normal {
		t.Errorf("Document() = %+v", doc)
	}

	if err = svc.DeleteVisitor(ctx); err != nil {
		t.Fatalf("DeleteVisitor() error = %v", err)
	}
	if _, err = svc.Plan(ctx); !errors.Is(err, coach.ErrNotFound) {
		t.Errorf("Plan() after delete error = %v, want ErrNotFound", err)
	}
	summaries, err := svc.PoseSummaries(ctx, 10)
	if err != nil || len(summaries) != 0 {
		t.Errorf("PoseSummaries() after delete = %v, %v", summaries, err)
	}
}

func TestService_SaveProfile_errors(t *testing.T) {
	svc, _ := newService(t)

	p := validProfile()
	p.HeightCm = math.NaN()
	_, err := svc.SaveProfile(visitor(t, "v-nan"), p)
	var verrs fitness.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("SaveProfile() error = %v, want validation errors", err)
	}
	if _, ok := verrs["height"]; !ok {
		t.Errorf("validation errors %v lack height", verrs)
	}

	ctx, cancel := context.WithCancel(visitor(t, "v-cancelled"))
	cancel()
	_, err = svc.SaveProfile(ctx, validProfile())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("SaveProfile() error = %v, want context.Canceled", err)
	}
	if msg := err.Error(); !strings.HasPrefix(msg, "store profile: ") || strings.Count(msg, "profile") != 1 {
		t.Errorf("SaveProfile() error = %q, want a single store profile annotation", msg)
	}
}
