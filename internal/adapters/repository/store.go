// Package repository keeps the games of one import session.
package repository

import (
	"context"

	"github.com/okian/replaymerge/internal/domain/match"
	"github.com/okian/replaymerge/internal/domain/recording"
)

// Store provides ordered access to the games of a session. The position of
// a game in the store is its game index in the match.
type Store interface {
	// Append adds g after the existing games.
	// Returns ErrDuplicateGame if a game with the same id is stored.
	Append(ctx context.Context, g *match.Game) error

	// Get returns the game with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (*match.Game, error)

	// Index returns the position of the game with the given id or ErrNotFound.
	Index(ctx context.Context, id int64) (int, error)

	// FindMatching returns the first game rec is another recording of.
	FindMatching(ctx context.Context, rec recording.Recording) (*match.Game, bool)

	// Move places the game with the given id at position to.
	Move(ctx context.Context, id int64, to int) error

	// Remove drops the game with the given id.
	Remove(ctx context.Context, id int64) error

	// List returns the games in match order.
	List(ctx context.Context) []*match.Game

	// Count returns the number of games.
	Count(ctx context.Context) int

	// Touch signals that a stored game changed in place.
	Touch(ctx context.Context)
}
