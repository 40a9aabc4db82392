package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/okian/replaymerge/internal/domain/match"
	"github.com/okian/replaymerge/internal/domain/recording"
)

// MemoryStore is an in-memory Store keeping games in session order.
type MemoryStore struct {
	mu       sync.RWMutex
	games    []*match.Game
	observer func(games, dummies int)
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(_ context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, g *match.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position(g.ID()) >= 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateGame, g.ID())
	}
	s.games = append(s.games, g)
	s.notify()
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id int64) (*match.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.position(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s.games[i], nil
}

// Index implements Store.
func (s *MemoryStore) Index(_ context.Context, id int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.position(id)
	if i < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return i, nil
}

// FindMatching implements Store.
func (s *MemoryStore) FindMatching(_ context.Context, rec recording.Recording) (*match.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.games {
		if g.Matches(rec) {
			return g, true
		}
	}
	return nil, false
}

// Move implements Store.
func (s *MemoryStore) Move(_ context.Context, id int64, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.position(id)
	if from < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if to < 0 || to >= len(s.games) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidPosition, to, len(s.games))
	}
	g := s.games[from]
	s.games = slices.Insert(slices.Delete(s.games, from, from+1), to, g)
	return nil
}

// Remove implements Store.
func (s *MemoryStore) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.position(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.games = slices.Delete(s.games, i, i+1)
	s.notify()
	return nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) []*match.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.games)
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Touch implements Store by reporting the current counts to the observer.
func (s *MemoryStore) Touch(_ context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.notify()
}

// position must be called with s.mu held.
func (s *MemoryStore) position(id int64) int {
	return slices.IndexFunc(s.games, func(g *match.Game) bool { return g.ID() == id })
}

// notify must be called with s.mu held.
func (s *MemoryStore) notify() {
	if s.observer == nil {
		return
	}
	dummies := 0
	for _, g := range s.games {
		if g.IsDummy() {
			dummies++
		}
	}
	s.observer(len(s.games), dummies)
}
