package coach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/myrjola/fitcoach/internal/sqlite"
)

type sqliteProfileRepository struct {
	baseRepository
}

func newSQLiteProfileRepository(db *sqlite.Database, logger *slog.Logger) *sqliteProfileRepository {
	return &sqliteProfileRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// Get retrieves the profile of the visitor in ctx.
func (r *sqliteProfileRepository) Get(ctx context.Context) (Profile, error) {
	id, err := visitorID(ctx)
	if err != nil {
		return Profile{}, err
	}

	var (
		p            Profile
		gender       string
		fitnessLevel string
		goal         string
	)
	err = r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT name, age, gender, height_cm, weight_kg, fitness_level, goal
		FROM profiles
		WHERE visitor_id = ?`, id).Scan(&p.Name, &p.Age, &gender, &p.HeightCm, &p.WeightKg, &fitnessLevel, &goal)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query profile: %w", err)
	}
	p.Gender = Gender(gender)
	p.Level = plan.Level(fitnessLevel)
	p.Goal = plan.Goal(goal)
	return p, nil
}

// set upserts the profile of visitor id.
func (r *sqliteProfileRepository) set(ctx context.Context, db execer, id string, p Profile, updated time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO profiles (visitor_id, name, age, gender, height_cm, weight_kg, fitness_level, goal, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (visitor_id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			gender = excluded.gender,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			fitness_level = excluded.fitness_level,
			goal = excluded.goal,
			updated = excluded.updated`,
		id, p.Name, p.Age, string(p.Gender), p.HeightCm, p.WeightKg, string(p.Level), string(p.Goal),
		formatTimestamp(updated))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
