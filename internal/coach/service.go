package coach

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/export"
	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/myrjola/fitcoach/internal/pose"
	"github.com/myrjola/fitcoach/internal/progress"
	"github.com/myrjola/fitcoach/internal/sqlite"
)

// Service handles the visitor facing coaching operations. Every method acts on the visitor ID carried by ctx, see
// [contexthelpers.WithVisitorID].
type Service struct {
	repo   *repository
	db     *sqlite.Database
	plans  *plan.Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a coaching service. now defaults to time.Now.
func NewService(db *sqlite.Database, logger *slog.Logger, plans *plan.Cache, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   newRepository(db, logger),
		db:     db,
		plans:  plans,
		logger: logger,
		now:    now,
	}
}

// SaveProfile validates and stores the profile, generates a new plan and restarts progress tracking.
//
// Invalid profiles return [fitness.ValidationErrors].
func (s *Service) SaveProfile(ctx context.Context, p Profile) (Plan, error) {
	id, err := visitorID(ctx)
	if err != nil {
		return Plan{}, err
	}
	if err = p.Validate(); err != nil {
		return Plan{}, errors.Wrap(err, "validate profile")
	}

	week, err := s.plans.Generate(p.Level, p.Goal, p.BMI(), p.Category())
	if err != nil {
		return Plan{}, errors.Wrap(err, "generate plan")
	}
	now := s.now()
	var tracker progress.Tracker
	tracker.Reset(week.ActiveDays())

	err = s.repo.base.inTx(ctx, func(tx *sql.Tx) error {
		if err = ensureVisitor(ctx, tx, id); err != nil {
			return err
		}
		if err = s.repo.profiles.set(ctx, tx, id, p, now); err != nil {
			return err
		}
		if err = s.repo.plans.set(ctx, tx, id, week, now); err != nil {
			return err
		}
		return s.repo.progress.set(ctx, tx, id, tracker)
	})
	if err != nil {
		return Plan{}, errors.Wrap(err, "store profile")
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated plan",
		slog.String("level", string(p.Level)),
		slog.String("goal", string(p.Goal)),
		slog.String("bmi_category", string(p.Category())),
		slog.Int("training_days", week.ActiveDays()))
	return Plan{Week: week, Generated: now}, nil
}

// Profile returns the stored profile or [ErrNotFound].
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	p, err := s.repo.profiles.Get(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Plan returns the current plan or [ErrNotFound].
func (s *Service) Plan(ctx context.Context) (Plan, error) {
	p, err := s.repo.plans.Get(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

// Progress returns the progress of the current plan or [ErrNotFound].
func (s *Service) Progress(ctx context.Context) (progress.Tracker, error) {
	t, err := s.repo.progress.Get(ctx)
	if err != nil {
		return progress.Tracker{}, fmt.Errorf("get progress: %w", err)
	}
	return t, nil
}

// MarkDayComplete logs the plan day of weekday as done today. It reports false when the day was already completed
// today and returns [ErrRestDay] for recovery days.
func (s *Service) MarkDayComplete(ctx context.Context, weekday time.Weekday) (bool, error) {
	p, err := s.Plan(ctx)
	if err != nil {
		return false, err
	}
	day, ok := p.Week.Day(weekday)
	if !ok {
		return false, errors.Wrap(ErrNotFound, "plan day", slog.String("weekday", weekday.String()))
	}
	if day.IsRest() {
		return false, errors.Wrap(ErrRestDay, "complete day", slog.String("weekday", weekday.String()))
	}

	now := s.now()
	completed, err := s.repo.progress.Update(ctx, func(t *progress.Tracker) (bool, error) {
		return t.MarkComplete(weekday, now), nil
	})
	if err != nil {
		return false, fmt.Errorf("update progress: %w", err)
	}
	if completed {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "completed workout",
			slog.String("weekday", weekday.String()), slog.String("muscle_group", string(day.MuscleGroup)))
	}
	return completed, nil
}

// SavePoseSummary stores the result of a pose analysis session. Sessions without reps are not stored.
func (s *Service) SavePoseSummary(ctx context.Context, snapshot pose.Snapshot) error {
	if snapshot.Reps == 0 {
		return nil
	}
	summary := PoseSummary{
		Exercise:    snapshot.Exercise,
		Reps:        snapshot.Reps,
		CorrectReps: snapshot.CorrectReps,
		Finished:    s.now(),
	}
	if err := s.repo.poses.Add(ctx, summary); err != nil {
		return fmt.Errorf("add pose summary: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "stored pose session",
		slog.String("exercise", summary.Exercise),
		slog.Int("reps", summary.Reps),
		slog.Int("correct_reps", summary.CorrectReps))
	return nil
}

// PoseSummaries returns up to limit pose sessions, most recent first.
func (s *Service) PoseSummaries(ctx context.Context, limit int) ([]PoseSummary, error) {
	summaries, err := s.repo.poses.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list pose summaries: %w", err)
	}
	return summaries, nil
}

// Document assembles the current plan and profile for exporting.
func (s *Service) Document(ctx context.Context) (export.Document, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return export.Document{}, err
	}
	stored, err := s.Plan(ctx)
	if err != nil {
		return export.Document{}, err
	}
	return export.Document{
		Plan:        stored.Week,
		Name:        p.Name,
		BMI:         p.BMI(),
		Category:    p.Category(),
		Level:       p.Level,
		Goal:        p.Goal,
		GeneratedAt: s.now(),
	}, nil
}

// ExportVisitorData writes everything stored for the visitor into an SQLite file in dir and returns its path.
func (s *Service) ExportVisitorData(ctx context.Context, dir string) (string, error) {
	id, err := visitorID(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.db.CreateVisitorDB(ctx, id, dir)
	if err != nil {
		return "", fmt.Errorf("create visitor db: %w", err)
	}
	return path, nil
}

// DeleteVisitor removes everything stored for the visitor.
func (s *Service) DeleteVisitor(ctx context.Context) error {
	id, err := visitorID(ctx)
	if err != nil {
		return err
	}
	if _, err = s.db.ReadWrite.ExecContext(ctx, `DELETE FROM visitors WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete visitor: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "deleted visitor data")
	return nil
}
