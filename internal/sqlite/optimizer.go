package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitcoach/internal/errors"
)

const optimizeInterval = time.Hour

// optimize runs the given optimize pragma. See https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) optimize(ctx context.Context, pragma string) {
	start := time.Now()
	if _, err := db.ReadWrite.ExecContext(ctx, pragma); err != nil {
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database",
			errors.SlogError(fmt.Errorf("optimize database: %w", err)))
		return
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, "optimized database", slog.Duration("duration", time.Since(start)))
}

// startDatabaseOptimizer runs optimize once per interval until ctx is done.
func (db *Database) startDatabaseOptimizer(ctx context.Context) {
	ticker := time.NewTicker(optimizeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			db.optimize(ctx, "PRAGMA optimize;")
		}
	}
}
