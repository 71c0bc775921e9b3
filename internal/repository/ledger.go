package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kassalytics/tracker/internal/domain"
)

// Ledger defines the interface for wager and bettor-account persistence.
// Balance-moving operations happen inside a LedgerTx so a stake is never
// debited without its wager row, and settlement is all-or-nothing.
type Ledger interface {
	GetWager(ctx context.Context, id uuid.UUID) (*domain.Wager, error)
	GetWagerByGameAndBettor(ctx context.Context, gameID, bettorID string) (*domain.Wager, error)
	ListWagersByGame(ctx context.Context, gameID string) ([]domain.Wager, error)
	ListWagersByBettor(ctx context.Context, bettorID string, limit int) ([]domain.Wager, error)

	GetBettor(ctx context.Context, bettorID string) (*domain.BettorAccount, error)

	// EnsureBettor returns the bettor account, creating it with the
	// starting balance on first contact.
	EnsureBettor(ctx context.Context, bettorID string, startingBalance int64) (*domain.BettorAccount, error)

	// ListTopBettors returns accounts ordered by balance descending.
	ListTopBettors(ctx context.Context, limit int) ([]domain.BettorAccount, error)

	// AdjustBalance applies an admin-issued delta and returns the updated
	// account. The balance never goes below zero.
	AdjustBalance(ctx context.Context, bettorID string, delta int64) (*domain.BettorAccount, error)

	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx extends Tx with the operations bet placement and settlement
// need to run atomically.
type LedgerTx interface {
	Tx

	// GetBettorForUpdate row-locks the bettor account for the duration
	// of the transaction.
	GetBettorForUpdate(ctx context.Context, bettorID string) (*domain.BettorAccount, error)

	// UpdateBettor writes back balance and lifetime stats.
	UpdateBettor(ctx context.Context, acct *domain.BettorAccount) error

	// InsertWager records a wager. A unique constraint on
	// (game_id, bettor_id) surfaces duplicates as ErrDuplicateBet.
	InsertWager(ctx context.Context, wager *domain.Wager) error

	// ListWagersByGameForUpdate row-locks every wager on the game.
	ListWagersByGameForUpdate(ctx context.Context, gameID string) ([]domain.Wager, error)

	// MarkWagersSettled flags all of a game's wagers as settled.
	MarkWagersSettled(ctx context.Context, gameID string) error

	// UpdateGameStateIfMatches is the same compare-and-set as on Game,
	// exposed transactionally so settlement can claim the game and pay
	// out in one atomic step.
	UpdateGameStateIfMatches(ctx context.Context, gameID string, expectedState, newState domain.GameState) (int64, error)

	// RecordGameResult stores the winning side on the game row.
	RecordGameResult(ctx context.Context, gameID string, winningSide domain.Side) error
}
