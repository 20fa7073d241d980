package services

import (
	"city-bus-manager/internal/domain"
	"city-bus-manager/internal/platform/obs"
	"context"
	"errors"
	"math/rand"
	"sync"
)

// dayStride spreads consecutive days across the seed space.
const dayStride = 0x9E3779B97F4A7C15

// DayRandom returns the random stream for one day of a game. The stream depends
// only on the game's seed and the number of days already simulated, so a saved
// game reloaded and re-run produces the same day as the original.
func DayRandom(seed int64, dayCount int) *rand.Rand {
	mixed := uint64(seed) + uint64(dayCount)*dayStride
	return rand.New(rand.NewSource(int64(mixed)))
}

// Session owns the one live Game and serialises every operation on it.
// The HTTP layer and the day loop share a Session; nothing else holds the Game.
type Session struct {
	mu      sync.Mutex
	game    *domain.Game
	economy Economy
	seed    int64
}

func NewSession(game *domain.Game, economy Economy, seed int64) *Session {
	return &Session{game: game, economy: economy, seed: seed}
}

// RunDay simulates the next day under the session's economy.
func (s *Session) RunDay(ctx context.Context) (_ *domain.DayResult, err error) {
	defer obs.Time(ctx, "session.RunDay")(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := DayRandom(s.seed, s.game.Ledger.DayCount)
	return SimulateDay(s.game, s.economy, rng)
}

// Do runs fn with exclusive access to the game.
func (s *Session) Do(fn func(g *domain.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// Snapshot is Do for callers that also need the seed, such as saving.
func (s *Session) Snapshot(fn func(g *domain.Game, seed int64) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game, s.seed)
}

// Replace swaps in a loaded game. The game must pass its integrity check.
func (s *Session) Replace(game *domain.Game, seed int64) error {
	if game == nil {
		return errors.New("replace session: game must be non-nil")
	}
	if err := game.CheckIntegrity(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = game
	s.seed = seed
	return nil
}

func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

func (s *Session) Economy() Economy {
	return s.economy
}
