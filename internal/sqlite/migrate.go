package sqlite

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsTable = "schema_migrations"

// migrate applies the embedded migrations that have not run yet.
func (db *Database) migrate(ctx context.Context) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	// The driver's Close would close the shared pool, so the migrator is left for the garbage collector.
	driver, err := migratesqlite.WithInstance(db.ReadWrite, &migratesqlite.Config{
		MigrationsTable: migrationsTable,
		DatabaseName:    "",
		NoTxWrap:        false,
	})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database",
		slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
