package savegame

import (
	"city-bus-manager/internal/domain"
	"city-bus-manager/internal/ports"
	"city-bus-manager/internal/services"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Store moves games between a Session and a SaveRepository.
type Store struct {
	Repo    ports.SaveRepository
	Catalog *domain.Catalog
	Now     func() time.Time
}

func NewStore(repo ports.SaveRepository, catalog *domain.Catalog) *Store {
	return &Store{Repo: repo, Catalog: catalog, Now: time.Now}
}

// Save writes the session's current game to the named slot.
func (s *Store) Save(ctx context.Context, name string, session *services.Session) (ports.SaveSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.SaveSummary{}, errors.New("save: name must not be empty")
	}

	var summary ports.SaveSummary
	var payload []byte
	err := session.Snapshot(func(g *domain.Game, seed int64) error {
		data, err := Marshal(g, seed)
		if err != nil {
			return err
		}
		payload = data
		summary = Summarize(name, g, s.Now())
		return nil
	})
	if err != nil {
		return ports.SaveSummary{}, fmt.Errorf("save %q: %w", name, err)
	}

	if err := s.Repo.SaveGame(ctx, summary, payload); err != nil {
		return ports.SaveSummary{}, err
	}
	return summary, nil
}

// Load replaces the session's game with the named slot.
func (s *Store) Load(ctx context.Context, name string, session *services.Session) error {
	data, err := s.Repo.LoadGame(ctx, strings.TrimSpace(name))
	if err != nil {
		return err
	}

	g, seed, err := Unmarshal(data, s.Catalog)
	if err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}

	return session.Replace(g, seed)
}

func (s *Store) List(ctx context.Context) ([]ports.SaveSummary, error) {
	return s.Repo.ListSaves(ctx)
}

// Import validates a save file on disk and stores it under name.
func (s *Store) Import(ctx context.Context, name, path string) (ports.SaveSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ports.SaveSummary{}, fmt.Errorf("import save: read %q: %w", path, err)
	}

	g, _, err := Unmarshal(data, s.Catalog)
	if err != nil {
		return ports.SaveSummary{}, fmt.Errorf("import save %q: %w", path, err)
	}

	summary := Summarize(strings.TrimSpace(name), g, s.Now())
	if err := s.Repo.SaveGame(ctx, summary, data); err != nil {
		return ports.SaveSummary{}, err
	}
	return summary, nil
}
