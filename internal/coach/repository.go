package coach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitcoach/internal/contexthelpers"
	"github.com/myrjola/fitcoach/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// baseRepository holds what every repository needs.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
	}
}

// visitorID returns the visitor the repositories are scoped to.
func visitorID(ctx context.Context) (string, error) {
	id := contexthelpers.VisitorID(ctx)
	if id == "" {
		return "", ErrNoVisitor
	}
	return id, nil
}

// inTx runs fn in a write transaction that is committed when fn succeeds.
func (r *baseRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ensureVisitor creates the visitor row the other tables reference.
func ensureVisitor(ctx context.Context, db execer, id string) error {
	if _, err := db.ExecContext(ctx, `INSERT INTO visitors (id) VALUES (?) ON CONFLICT (id) DO NOTHING`, id); err != nil {
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

// repository bundles the repositories used by the service.
type repository struct {
	base     baseRepository
	profiles *sqliteProfileRepository
	plans    *sqlitePlanRepository
	progress *sqliteProgressRepository
	poses    *sqlitePoseRepository
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{
		base:     newBaseRepository(db, logger),
		profiles: newSQLiteProfileRepository(db, logger),
		plans:    newSQLitePlanRepository(db, logger),
		progress: newSQLiteProgressRepository(db, logger),
		poses:    newSQLitePoseRepository(db, logger),
	}
}
