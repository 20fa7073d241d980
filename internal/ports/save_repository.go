package ports

import (
	"context"
	"errors"
	"time"
)

// ErrSaveNotFound is returned by LoadGame when no save has the requested name.
var ErrSaveNotFound = errors.New("save not found")

// Listing metadata stored next to each encoded save record.
type SaveSummary struct {
	Name        string
	CompanyName string
	Day         int
	Cash        float64
	SavedAt     time.Time
}

// Port: a boundary for storing and retrieving encoded save records.
type SaveRepository interface {
	// Store (or overwrite) the payload under summary.Name.
	SaveGame(ctx context.Context, summary SaveSummary, payload []byte) error
	// Retrieve the payload stored under name.
	LoadGame(ctx context.Context, name string) ([]byte, error)
	// List stored saves ordered by name.
	ListSaves(ctx context.Context) ([]SaveSummary, error)
}
