package repositories

import (
	"city-bus-manager/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite-backed implementation of the SaveRepository port.
type SqliteSaveRepository struct{ DB *sql.DB }

func NewSqliteSaveRepository(db *sql.DB) *SqliteSaveRepository {
	return &SqliteSaveRepository{DB: db}
}

// Store a save slot, replacing any save with the same name.
func (s *SqliteSaveRepository) SaveGame(ctx context.Context, summary ports.SaveSummary, payload []byte) error {
	if s.DB == nil {
		return errors.New("sqlite save repository: DB is nil")
	}

	name := strings.TrimSpace(summary.Name)
	if name == "" {
		return errors.New("save game: name must not be empty")
	}

	query := `
	INSERT OR REPLACE INTO saves (
		name,
		company_name,
		day,
		cash,
		payload,
		saved_at
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	savedAt := summary.SavedAt.UTC().Format(time.RFC3339Nano)
	if _, err := s.DB.ExecContext(ctx, query, name, summary.CompanyName, summary.Day, summary.Cash, string(payload), savedAt); err != nil {
		return fmt.Errorf("save game %q: insert: %w", name, err)
	}

	return nil
}

// Return the stored payload of a save slot.
func (s *SqliteSaveRepository) LoadGame(ctx context.Context, name string) ([]byte, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite save repository: DB is nil")
	}

	var payload string
	err := s.DB.QueryRowContext(ctx, `SELECT payload FROM saves WHERE name = ?;`, strings.TrimSpace(name)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load game %q: %w", name, ports.ErrSaveNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %q: query saves table: %w", name, err)
	}

	return []byte(payload), nil
}

// Return every save slot, most recent first.
func (s *SqliteSaveRepository) ListSaves(ctx context.Context) ([]ports.SaveSummary, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite save repository: DB is nil")
	}

	query := `
	SELECT
		name,
		company_name,
		day,
		cash,
		saved_at
	FROM saves
	ORDER BY saved_at DESC, name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list saves: query saves table: %w", err)
	}
	defer rows.Close()

	saves := make([]ports.SaveSummary, 0, 16)
	for rows.Next() {
		var sum ports.SaveSummary
		var savedAt string
		if err := rows.Scan(&sum.Name, &sum.CompanyName, &sum.Day, &sum.Cash, &savedAt); err != nil {
			return nil, fmt.Errorf("list saves: scan row: %w", err)
		}
		sum.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("list saves: parse saved_at of %q: %w", sum.Name, err)
		}
		saves = append(saves, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: row iteration: %w", err)
	}

	return saves, nil
}
