package coach

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/fitcoach/internal/progress"
	"github.com/myrjola/fitcoach/internal/sqlite"
)

type sqliteProgressRepository struct {
	baseRepository
}

func newSQLiteProgressRepository(db *sqlite.Database, logger *slog.Logger) *sqliteProgressRepository {
	return &sqliteProgressRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTracker(ctx context.Context, db queryRower, id string) (progress.Tracker, error) {
	var data string
	err := db.QueryRowContext(ctx, `SELECT tracker FROM progress WHERE visitor_id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.Tracker{}, ErrNotFound
	}
	if err != nil {
		return progress.Tracker{}, fmt.Errorf("query progress: %w", err)
	}
	var t progress.Tracker
	if err = json.Unmarshal([]byte(data), &t); err != nil {
		return progress.Tracker{}, fmt.Errorf("decode progress: %w", err)
	}
	return t, nil
}

// Get retrieves the progress of the visitor in ctx.
func (r *sqliteProgressRepository) Get(ctx context.Context) (progress.Tracker, error) {
	id, err := visitorID(ctx)
	if err != nil {
		return progress.Tracker{}, err
	}
	return getTracker(ctx, r.db.ReadOnly, id)
}

func (r *sqliteProgressRepository) set(ctx context.Context, db execer, id string, t progress.Tracker) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO progress (visitor_id, tracker)
		VALUES (?, ?)
		ON CONFLICT (visitor_id) DO UPDATE SET tracker = excluded.tracker`, id, string(data))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Update loads the tracker, applies updateFn and stores the result when updateFn reports a change.
func (r *sqliteProgressRepository) Update(
	ctx context.Context,
	updateFn func(t *progress.Tracker) (bool, error),
) (bool, error) {
	id, err := visitorID(ctx)
	if err != nil {
		return false, err
	}

	var updated bool
	err = r.inTx(ctx, func(tx *sql.Tx) error {
		t, err := getTracker(ctx, tx, id)
		if err != nil {
			return err
		}
		if updated, err = updateFn(&t); err != nil || !updated {
			return err
		}
		return r.set(ctx, tx, id, t)
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}
