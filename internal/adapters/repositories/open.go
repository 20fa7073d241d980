package repositories

import (
	"city-bus-manager/internal/platform/db"
	"city-bus-manager/internal/ports"
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// OpenSaveRepository connects to Postgres when databaseURL is set and to the
// SQLite file at dbPath otherwise, then makes sure the schema exists.
// The caller owns the returned *sql.DB.
func OpenSaveRepository(ctx context.Context, databaseURL, dbPath string) (ports.SaveRepository, *sql.DB, error) {
	if strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := InitSQLSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open save repository: %w", err)
		}
		log.Printf("saves backend=postgres")
		return NewSQLSaveRepository(conn), conn, nil
	}

	conn, err := db.OpenSqlite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := InitSchema(conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open save repository: %w", err)
	}
	log.Printf("saves backend=sqlite path=%s", dbPath)
	return NewSqliteSaveRepository(conn), conn, nil
}
