package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const visitorsTableName = "visitors"

// CreateVisitorDB copies everything stored for one visitor into a separate SQLite database file in dir and returns
// its path.
//
// Visitors can download the file to take their data with them. Tables are included when they reference the
// visitors table through a foreign key.
func (db *Database) CreateVisitorDB(ctx context.Context, visitorID string, dir string) (_ string, err error) {
	exportPath := filepath.Join(dir, "fitcoach-"+visitorID+".sqlite3")
	exportDsn := fmt.Sprintf("file:%s?mode=rwc", exportPath)

	conn, err := db.ReadOnly.Conn(ctx)
	if err != nil {
		return "", fmt.Errorf("get db connection: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close db connection: %w", closeErr)
		}
	}()

	// Attaching and filling the export database needs writes on this otherwise read-only connection.
	if _, err = conn.ExecContext(ctx, `PRAGMA QUERY_ONLY = FALSE`); err != nil {
		return "", fmt.Errorf("disable read only mode: %w", err)
	}
	defer func() {
		if _, pragmaErr := conn.ExecContext(context.WithoutCancel(ctx), `PRAGMA QUERY_ONLY = TRUE`); pragmaErr != nil {
			err = errors.Join(err, fmt.Errorf("restore read only mode: %w", pragmaErr))
		}
	}()

	if _, err = conn.ExecContext(ctx, `ATTACH DATABASE ? AS export`, exportDsn); err != nil {
		return "", fmt.Errorf("attach export database: %w", err)
	}
	defer func() {
		if _, detachErr := conn.ExecContext(context.WithoutCancel(ctx), `DETACH DATABASE export`); detachErr != nil {
			err = errors.Join(err, fmt.Errorf("detach export database: %w", detachErr))
		}
	}()

	if err = db.copyVisitorData(ctx, conn, visitorID); err != nil {
		return "", err
	}
	return exportPath, nil
}

func (db *Database) copyVisitorData(ctx context.Context, conn *sql.Conn, visitorID string) (err error) {
	tx, err := conn.BeginTx(ctx, nil)
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

	tables, err := visitorTables(ctx, tx)
	if err != nil {
		return fmt.Errorf("find visitor tables: %w", err)
	}
	for _, table := range tables {
		if err = copyTableSchema(ctx, tx, table.name); err != nil {
			return fmt.Errorf("copy schema for table %s: %w", table.name, err)
		}
		query := "INSERT INTO export." + table.name + " SELECT * FROM main." + table.name +
			" WHERE " + table.visitorColumn + " = ?"
		if _, err = tx.ExecContext(ctx, query, visitorID); err != nil {
			return fmt.Errorf("copy data for table %s: %w", table.name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit export database: %w", err)
	}
	return nil
}

// visitorTable is a table holding visitor data and the column identifying the visitor.
type visitorTable struct {
	name          string
	visitorColumn string
}

// visitorTables lists the visitors table followed by every table with a foreign key to visitors.id.
func visitorTables(ctx context.Context, tx *sql.Tx) (_ []visitorTable, err error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT m.name, fk."from"
		FROM sqlite_schema m
		         JOIN pragma_foreign_key_list(m.name) fk
		WHERE m.type = 'table'
		  AND fk."table" = ?
		  AND fk."to" = 'id'
		ORDER BY m.name`, visitorsTableName)
	if err != nil {
		return nil, fmt.Errorf("query foreign keys: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	tables := []visitorTable{{name: visitorsTableName, visitorColumn: "id"}}
	for rows.Next() {
		var t visitorTable
		if err = rows.Scan(&t.name, &t.visitorColumn); err != nil {
			return nil, fmt.Errorf("scan foreign key: %w", err)
		}
		tables = append(tables, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foreign keys: %w", err)
	}
	return tables, nil
}

// copyTableSchema creates tableName in the export database with the original definition.
func copyTableSchema(ctx context.Context, tx *sql.Tx, tableName string) error {
	var createSQL string
	err := tx.QueryRowContext(ctx, `SELECT sql FROM main.sqlite_schema WHERE type = 'table' AND name = ?`,
		tableName).Scan(&createSQL)
	if err != nil {
		return fmt.Errorf("get schema: %w", err)
	}

	prefix := "CREATE TABLE " + tableName
	if !strings.HasPrefix(createSQL, prefix) {
		return fmt.Errorf("unexpected table definition %q", createSQL)
	}
	if _, err = tx.ExecContext(ctx, "CREATE TABLE export."+tableName+strings.TrimPrefix(createSQL, prefix)); err != nil {
		return fmt.Errorf("create table in export db: %w", err)
	}
	return nil
}
