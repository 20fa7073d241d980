package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createSavesQuery := `
	CREATE TABLE IF NOT EXISTS saves (
		name TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		day INTEGER NOT NULL,
		cash REAL NOT NULL,
		payload TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_saves_saved_at
	ON saves(saved_at);
	`

	return execSchema(context.Background(), db, []string{createSavesQuery, createIndexQuery})
}

// Initialize the Postgres database schema.
func InitSQLSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createSavesQuery := `
	CREATE TABLE IF NOT EXISTS saves (
		name TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		day INTEGER NOT NULL,
		cash DOUBLE PRECISION NOT NULL,
		payload JSONB NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_saves_saved_at
	ON saves(saved_at DESC);
	`

	return execSchema(ctx, db, []string{createSavesQuery, createIndexQuery})
}

func execSchema(ctx context.Context, db *sql.DB, statements []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
