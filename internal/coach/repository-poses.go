package coach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/fitcoach/internal/sqlite"
)

type sqlitePoseRepository struct {
	baseRepository
}

func newSQLitePoseRepository(db *sqlite.Database, logger *slog.Logger) *sqlitePoseRepository {
	return &sqlitePoseRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// Add stores a finished pose session for the visitor in ctx.
func (r *sqlitePoseRepository) Add(ctx context.Context, s PoseSummary) error {
	id, err := visitorID(ctx)
	if err != nil {
		return err
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := ensureVisitor(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pose_sessions (visitor_id, exercise, reps, correct_reps, finished)
			VALUES (?, ?, ?, ?, ?)`,
			id, s.Exercise, s.Reps, min(s.CorrectReps, s.Reps), formatTimestamp(s.Finished))
		if err != nil {
			return fmt.Errorf("insert pose session: %w", err)
		}
		return nil
	})
}

// List returns up to limit sessions of the visitor in ctx, most recent first.
func (r *sqlitePoseRepository) List(ctx context.Context, limit int) (_ []PoseSummary, err error) {
	id, err := visitorID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise, reps, correct_reps, finished
		FROM pose_sessions
		WHERE visitor_id = ?
		ORDER BY finished DESC, id DESC
		LIMIT ?`, id, limit)
	if err != nil {
		return nil, fmt.Errorf("query pose sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var summaries []PoseSummary
	for rows.Next() {
		var (
			s        PoseSummary
			finished string
		)
		if err = rows.Scan(&s.Exercise, &s.Reps, &s.CorrectReps, &finished); err != nil {
			return nil, fmt.Errorf("scan pose session: %w", err)
		}
		if s.Finished, err = parseTimestamp(finished); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return summaries, nil
}
