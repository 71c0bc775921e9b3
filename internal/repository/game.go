package repository

import (
	"context"

	"github.com/kassalytics/tracker/internal/domain"
)

// Game defines the interface for tracked-game persistence. The registry
// and lifecycle controller go through this; state transitions use the
// compare-and-set variant so concurrent sweeps cannot double-fire.
type Game interface {
	// CreateTrackedGame inserts a new tracked game. Returns false with a
	// nil error when the game id is already registered, making repeated
	// detection of the same live game idempotent.
	CreateTrackedGame(ctx context.Context, game *domain.TrackedGame) (bool, error)

	GetTrackedGame(ctx context.Context, gameID string) (*domain.TrackedGame, error)

	// ListUnresolvedGames returns every game that has not reached the
	// resolved state, oldest first.
	ListUnresolvedGames(ctx context.Context) ([]domain.TrackedGame, error)

	// CountUnresolvedGames supports the concurrent-tracking cap.
	CountUnresolvedGames(ctx context.Context) (int, error)

	// ListGamesInState returns unresolved games currently in the given state.
	ListGamesInState(ctx context.Context, state domain.GameState) ([]domain.TrackedGame, error)

	UpdateGameState(ctx context.Context, gameID string, state domain.GameState) error

	// UpdateGameStateIfMatches transitions state only when the stored
	// state equals expectedState. Returns the number of rows changed;
	// zero means another worker got there first.
	UpdateGameStateIfMatches(ctx context.Context, gameID string, expectedState, newState domain.GameState) (int64, error)

	// SetNotificationRef records the announcement message id so later
	// lifecycle updates can edit it.
	SetNotificationRef(ctx context.Context, gameID, ref string) error

	// MarkNeedsManual flags a game whose result could not be fetched
	// before the retry deadline.
	MarkNeedsManual(ctx context.Context, gameID string) error
}
