// Package sqlite opens the application database and keeps its schema up to date.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Database holds separate pools for writes and reads.
type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger
}

// NewDatabase connects to a database and applies pending migrations.
//
// Writes go through a single connection while reads use a pool, see
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995. url is a file path or ":memory:".
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(ctx, url, logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err = db.migrate(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate: %w", err), db.Close())
	}

	// 0x10002 analyzes every table on the first run, see https://www.sqlite.org/pragma.html#pragma_optimize.
	db.optimize(ctx, "PRAGMA optimize = 0x10002;")
	go db.startDatabaseOptimizer(ctx)

	return db, nil
}

//nolint:gochecknoglobals // sql.Register panics on duplicate names.
var once sync.Once

const (
	optimizedDriver = "sqlite3optimized"
	maxReadConns    = 10
)

// registerOptimizedDriver registers a driver that keeps temporary tables in memory and memory maps the database.
func registerOptimizedDriver() {
	sql.Register(optimizedDriver,
		&sqlite3.SQLiteDriver{
			Extensions: nil,
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if _, err := conn.Exec("PRAGMA temp_store = memory; PRAGMA mmap_size = 30000000000;", nil); err != nil {
					return fmt.Errorf("exec optimization pragmas: %w", err)
				}
				return nil
			},
		})
}

// dsns builds the read-write and read-only data source names for url.
//
// Options without a leading underscore are SQLite URI parameters (https://www.sqlite.org/uri.html), the others are
// go-sqlite3 options (https://pkg.go.dev/github.com/mattn/go-sqlite3#SQLiteDriver.Open).
func dsns(url string) (string, string, bool) {
	params := []string{
		"_loc=UTC",
		"_journal_mode=wal",
		"_busy_timeout=5000",
		// https://www.sqlite.org/pragma.html#pragma_synchronous
		"_synchronous=normal",
		// Visitor data cascades on delete.
		"_foreign_keys=on",
	}
	readWrite := append([]string{"mode=rwc", "_txlock=immediate"}, params...)
	readOnly := append([]string{"mode=ro", "_txlock=deferred", "_query_only=true"}, params...)

	// Every in-memory database gets a random name so that parallel tests stay isolated while both pools share it.
	// See https://www.sqlite.org/inmemorydb.html.
	inMemory := strings.Contains(url, ":memory:")
	if inMemory {
		url = rand.Text()
		readWrite = append(readWrite[1:], "mode=memory", "cache=shared")
		readOnly = append(readOnly[1:], "mode=memory", "cache=shared")
	}
	return "file:" + url + "?" + strings.Join(readWrite, "&"), "file:" + url + "?" + strings.Join(readOnly, "&"), inMemory
}

func configurePool(db *sql.DB, maxConns int, lifetime time.Duration) {
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(lifetime)
	db.SetConnMaxIdleTime(lifetime)
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	readWriteDSN, readOnlyDSN, inMemory := dsns(url)

	// An in-memory database vanishes with its last connection, so its connections never expire.
	lifetime := time.Hour
	if inMemory {
		lifetime = 0
	}

	once.Do(registerOptimizedDriver)

	readWriteDB, err := sql.Open(optimizedDriver, readWriteDSN)
	if err != nil {
		return nil, fmt.Errorf("open read-write database: %w", err)
	}
	configurePool(readWriteDB, 1, lifetime)
	// sql.Open is lazy. Pinging creates the database file and runs the connect hook.
	if err = readWriteDB.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping read-write database: %w", err), readWriteDB.Close())
	}

	readOnlyDB, err := sql.Open(optimizedDriver, readOnlyDSN)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open read-only database: %w", err), readWriteDB.Close())
	}
	configurePool(readOnlyDB, maxReadConns, lifetime)

	logger.LogAttrs(ctx, slog.LevelInfo, "opened database", slog.Bool("in_memory", inMemory))
	return &Database{
		ReadWrite: readWriteDB,
		ReadOnly:  readOnlyDB,
		logger:    logger,
	}, nil
}

// Close closes the database connections.
func (db *Database) Close() error {
	return errors.Join(db.ReadOnly.Close(), db.ReadWrite.Close())
}
