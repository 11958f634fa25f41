package coach

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/myrjola/fitcoach/internal/sqlite"
)

type sqlitePlanRepository struct {
	baseRepository
}

func newSQLitePlanRepository(db *sqlite.Database, logger *slog.Logger) *sqlitePlanRepository {
	return &sqlitePlanRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// Get retrieves the current plan of the visitor in ctx.
func (r *sqlitePlanRepository) Get(ctx context.Context) (Plan, error) {
	id, err := visitorID(ctx)
	if err != nil {
		return Plan{}, err
	}

	var days, generated string
	err = r.db.ReadOnly.QueryRowContext(ctx, `SELECT days, generated FROM plans WHERE visitor_id = ?`, id).
		Scan(&days, &generated)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("query plan: %w", err)
	}

	var p Plan
	if err = json.Unmarshal([]byte(days), &p.Week); err != nil {
		return Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	if p.Generated, err = parseTimestamp(generated); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (r *sqlitePlanRepository) set(ctx context.Context, db execer, id string, week plan.WeekPlan, generated time.Time) error {
	days, err := json.Marshal(week)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO plans (visitor_id, days, generated)
		VALUES (?, ?, ?)
		ON CONFLICT (visitor_id) DO UPDATE SET
			days = excluded.days,
			generated = excluded.generated`,
		id, string(days), formatTimestamp(generated))
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}
