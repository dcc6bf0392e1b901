package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// AUTOINCREMENT keeps SQLite from handing out the id of a deleted
// highest row again.
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS cosmonaut_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		age INTEGER NOT NULL
	);`

const pgSchema = `
	CREATE TABLE IF NOT EXISTS cosmonaut_table (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		age BIGINT NOT NULL
	);`

func InitSQLiteDB(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create sqlite schema: %w", err)
	}
	return nil
}

func InitPgDB(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		return fmt.Errorf("create postgres schema: %w", err)
	}
	return nil
}

// Connect opens the database for driver, creates the cosmonaut table if
// it is missing and returns the matching store. The caller owns the
// returned *sqlx.DB and must close it.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, CosmonautStore, error) {
	switch driver {
	case DriverSQLite:
		db, err := sqlx.Open(DriverSQLite, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		// One connection serializes writers and keeps :memory: databases
		// visible to every query.
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping sqlite: %w", err)
		}
		if err := InitSQLiteDB(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return db, NewSQLiteCosmonautStore(db), nil
	case DriverPostgres:
		db, err := NewPostgres(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		if err := InitPgDB(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return db, NewPgCosmonautStore(db), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
