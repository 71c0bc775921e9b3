package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/repository"
)

// LedgerRepository implements wager and bettor-account persistence for
// PostgreSQL. Stake debits and payouts only happen through LedgerTx so
// a crash can never leave a debit without its wager or vice versa.
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const wagerColumns = `id, game_id, bettor_id, side, stake, multiplier, potential_payout, placed_at, settled`

const bettorColumns = `bettor_id, balance, total_wagered, total_won, total_lost, bets_placed, bets_won, created_at`

// GetWager retrieves a wager by id
func (r *LedgerRepository) GetWager(ctx context.Context, id uuid.UUID) (*domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE id = $1`
	wager, err := scanWager(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWager, err)
	}
	return wager, nil
}

// GetWagerByGameAndBettor retrieves a bettor's wager on one game, nil when absent
func (r *LedgerRepository) GetWagerByGameAndBettor(ctx context.Context, gameID, bettorID string) (*domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE game_id = $1 AND bettor_id = $2`
	wager, err := scanWager(r.db.QueryRow(ctx, query, gameID, bettorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWager, err)
	}
	return wager, nil
}

// ListWagersByGame returns all wagers on a game
func (r *LedgerRepository) ListWagersByGame(ctx context.Context, gameID string) ([]domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE game_id = $1 ORDER BY placed_at`
	return queryWagers(ctx, r.db, query, gameID)
}

// ListWagersByBettor returns a bettor's most recent wagers
func (r *LedgerRepository) ListWagersByBettor(ctx context.Context, bettorID string, limit int) ([]domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers
		WHERE bettor_id = $1 ORDER BY placed_at DESC LIMIT $2`
	return queryWagers(ctx, r.db, query, bettorID, limit)
}

// GetBettor retrieves a bettor account, nil when the account does not exist
func (r *LedgerRepository) GetBettor(ctx context.Context, bettorID string) (*domain.BettorAccount, error) {
	query := `SELECT ` + bettorColumns + ` FROM bettor_accounts WHERE bettor_id = $1`
	acct, err := scanBettor(r.db.QueryRow(ctx, query, bettorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBettor, err)
	}
	return acct, nil
}

// EnsureBettor returns the bettor account, creating it with the starting
// balance on first contact. Concurrent first contacts race safely via
// ON CONFLICT DO NOTHING.
func (r *LedgerRepository) EnsureBettor(ctx context.Context, bettorID string, startingBalance int64) (*domain.BettorAccount, error) {
	query := `
		INSERT INTO bettor_accounts (bettor_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (bettor_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, bettorID, startingBalance); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateBettor, err)
	}

	acct, err := r.GetBettor(ctx, bettorID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%s: account missing after insert", ErrMsgFailedToCreateBettor)
	}
	return acct, nil
}

// ListTopBettors returns accounts ordered by balance descending
func (r *LedgerRepository) ListTopBettors(ctx context.Context, limit int) ([]domain.BettorAccount, error) {
	query := `SELECT ` + bettorColumns + ` FROM bettor_accounts
		ORDER BY balance DESC, bettor_id LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBettors, err)
	}
	defer rows.Close()

	accounts := []domain.BettorAccount{}
	for rows.Next() {
		acct, err := scanBettor(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBettors, err)
		}
		accounts = append(accounts, *acct)
	}
	return accounts, rows.Err()
}

// AdjustBalance applies an admin-issued delta and returns the updated
// account. GREATEST keeps the balance non-negative under the table's
// check constraint.
func (r *LedgerRepository) AdjustBalance(ctx context.Context, bettorID string, delta int64) (*domain.BettorAccount, error) {
	query := `
		UPDATE bettor_accounts
		SET balance = GREATEST(balance + $1, 0)
		WHERE bettor_id = $2
		RETURNING ` + bettorColumns

	acct, err := scanBettor(r.db.QueryRow(ctx, query, delta, bettorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, bettorID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAdjustBalance, err)
	}
	return acct, nil
}

// BeginTx starts a ledger transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ledgerTx{tx: tx}, nil
}

// ledgerTx implements repository.LedgerTx
type ledgerTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *ledgerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *ledgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetBettorForUpdate row-locks the bettor account until commit
func (t *ledgerTx) GetBettorForUpdate(ctx context.Context, bettorID string) (*domain.BettorAccount, error) {
	query := `SELECT ` + bettorColumns + ` FROM bettor_accounts WHERE bettor_id = $1 FOR UPDATE`
	acct, err := scanBettor(t.tx.QueryRow(ctx, query, bettorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, bettorID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBettor, err)
	}
	return acct, nil
}

// UpdateBettor writes back balance and lifetime stats
func (t *ledgerTx) UpdateBettor(ctx context.Context, acct *domain.BettorAccount) error {
	query := `
		UPDATE bettor_accounts
		SET balance = $1, total_wagered = $2, total_won = $3, total_lost = $4,
			bets_placed = $5, bets_won = $6
		WHERE bettor_id = $7
	`
	_, err := t.tx.Exec(ctx, query, acct.Balance, acct.TotalWagered,
		acct.TotalWon, acct.TotalLost, acct.BetsPlaced, acct.BetsWon, acct.BettorID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBettor, err)
	}
	return nil
}

// InsertWager records a wager. The unique (game_id, bettor_id)
// constraint surfaces second bets as ErrDuplicateBet.
func (t *ledgerTx) InsertWager(ctx context.Context, wager *domain.Wager) error {
	query := `
		INSERT INTO wagers (` + wagerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := t.tx.Exec(ctx, query, wager.ID, wager.GameID, wager.BettorID,
		string(wager.Side), wager.Stake, wager.MultiplierAtPlacement,
		wager.PotentialPayout, wager.PlacedAt, wager.Settled)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return domain.ErrDuplicateBet
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertWager, err)
	}
	return nil
}

// ListWagersByGameForUpdate row-locks every wager on the game
func (t *ledgerTx) ListWagersByGameForUpdate(ctx context.Context, gameID string) ([]domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers
		WHERE game_id = $1 ORDER BY placed_at FOR UPDATE`
	return queryWagers(ctx, t.tx, query, gameID)
}

// MarkWagersSettled flags all of a game's wagers as settled
func (t *ledgerTx) MarkWagersSettled(ctx context.Context, gameID string) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE wagers SET settled = TRUE WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSettleWagers, err)
	}
	return nil
}

// UpdateGameStateIfMatches performs the state CAS inside the transaction
// so settlement claims the game and pays out atomically
func (t *ledgerTx) UpdateGameStateIfMatches(ctx context.Context, gameID string, expectedState, newState domain.GameState) (int64, error) {
	result, err := t.tx.Exec(ctx,
		`UPDATE tracked_games SET state = $1 WHERE game_id = $2 AND state = $3`,
		string(newState), gameID, string(expectedState))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateGameState, err)
	}
	return result.RowsAffected(), nil
}

// RecordGameResult stores the winning side and marks the game resolved
func (t *ledgerTx) RecordGameResult(ctx context.Context, gameID string, winningSide domain.Side) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE tracked_games SET resolved = TRUE, winning_side = $1 WHERE game_id = $2`,
		string(winningSide), gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordResult, err)
	}
	return nil
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryWagers(ctx context.Context, q querier, query string, args ...any) ([]domain.Wager, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWagers, err)
	}
	defer rows.Close()

	wagers := []domain.Wager{}
	for rows.Next() {
		wager, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWagers, err)
		}
		wagers = append(wagers, *wager)
	}
	return wagers, rows.Err()
}

func scanWager(row pgx.Row) (*domain.Wager, error) {
	var (
		wager domain.Wager
		side  string
	)
	err := row.Scan(&wager.ID, &wager.GameID, &wager.BettorID, &side,
		&wager.Stake, &wager.MultiplierAtPlacement, &wager.PotentialPayout,
		&wager.PlacedAt, &wager.Settled)
	if err != nil {
		return nil, err
	}
	wager.Side = domain.Side(side)
	return &wager, nil
}

func scanBettor(row pgx.Row) (*domain.BettorAccount, error) {
	var acct domain.BettorAccount
	err := row.Scan(&acct.BettorID, &acct.Balance, &acct.TotalWagered,
		&acct.TotalWon, &acct.TotalLost, &acct.BetsPlaced, &acct.BetsWon,
		&acct.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &acct, nil
}
