package repositories

import (
	"city-bus-manager/internal/platform/obs"
	"city-bus-manager/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLSaveRepository is a Postgres-backed implementation of the SaveRepository port.
type SQLSaveRepository struct {
	DB *sql.DB
}

func NewSQLSaveRepository(db *sql.DB) *SQLSaveRepository {
	return &SQLSaveRepository{DB: db}
}

func (s *SQLSaveRepository) SaveGame(ctx context.Context, summary ports.SaveSummary, payload []byte) (err error) {
	defer obs.Time(ctx, "saves.SaveGame")(&err)

	if s.DB == nil {
		return errors.New("save repository: db is nil")
	}

	name := strings.TrimSpace(summary.Name)
	if name == "" {
		return errors.New("save game: name must not be empty")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO saves (name, company_name, day, cash, payload, saved_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (name) DO UPDATE
	SET company_name = EXCLUDED.company_name,
		day = EXCLUDED.day,
		cash = EXCLUDED.cash,
		payload = EXCLUDED.payload,
		saved_at = EXCLUDED.saved_at;
	`, name, summary.CompanyName, summary.Day, summary.Cash, string(payload), summary.SavedAt.UTC())
	if err != nil {
		return fmt.Errorf("save game %q: upsert: %w", name, err)
	}

	return nil
}

func (s *SQLSaveRepository) LoadGame(ctx context.Context, name string) (_ []byte, err error) {
	defer obs.Time(ctx, "saves.LoadGame")(&err)

	if s.DB == nil {
		return nil, errors.New("save repository: db is nil")
	}

	var payload []byte
	err = s.DB.QueryRowContext(ctx, `SELECT payload FROM saves WHERE name = $1;`, strings.TrimSpace(name)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load game %q: %w", name, ports.ErrSaveNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %q: query saves table: %w", name, err)
	}

	return payload, nil
}

func (s *SQLSaveRepository) ListSaves(ctx context.Context) (_ []ports.SaveSummary, err error) {
	defer obs.Time(ctx, "saves.ListSaves")(&err)

	if s.DB == nil {
		return nil, errors.New("save repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, company_name, day, cash, saved_at
	FROM saves
	ORDER BY saved_at DESC, name;
	`)
	if err != nil {
		return nil, fmt.Errorf("list saves: query saves table: %w", err)
	}
	defer rows.Close()

	saves := make([]ports.SaveSummary, 0, 16)
	for rows.Next() {
		var sum ports.SaveSummary
		if err := rows.Scan(&sum.Name, &sum.CompanyName, &sum.Day, &sum.Cash, &sum.SavedAt); err != nil {
			return nil, fmt.Errorf("list saves: scan rows: %w", err)
		}
		saves = append(saves, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: row iteration: %w", err)
	}

	return saves, nil
}
