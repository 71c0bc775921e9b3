package betting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/logger"
	"github.com/kassalytics/tracker/internal/repository"
)

// Service defines the interface for wager placement and settlement
type Service interface {
	// PlaceBet validates and records a wager, debiting the stake in the
	// same transaction. The payout multiplier is locked in at placement.
	PlaceBet(ctx context.Context, gameID, bettorID string, side domain.Side, stake int64) (*domain.Wager, error)

	// Resolve settles every wager on a game for the given winning side.
	// Resolution is idempotent: only the caller that claims the game
	// pays out, later calls get ErrAlreadyResolved.
	Resolve(ctx context.Context, gameID string, winningSide domain.Side) (*domain.SettlementSummary, error)

	GetBalance(ctx context.Context, bettorID string) (*domain.BettorAccount, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.BettorAccount, error)
	WagerHistory(ctx context.Context, bettorID string, limit int) ([]domain.Wager, error)
	ListGameWagers(ctx context.Context, gameID string) ([]domain.Wager, error)

	// AdminAdjust applies an operator-issued balance delta, for manual
	// corrections when a game needs manual resolution.
	AdminAdjust(ctx context.Context, bettorID string, delta int64) (*domain.BettorAccount, error)
}

// Config carries the engine's betting parameters
type Config struct {
	MinStake        int64
	StartingBalance int64
}

type service struct {
	ledger   repository.Ledger
	games    repository.Game
	eventBus event.Bus
	cfg      Config
	now      func() time.Time
}

// NewService creates a new betting service
func NewService(ledger repository.Ledger, games repository.Game, eventBus event.Bus, cfg Config) Service {
	return &service{
		ledger:   ledger,
		games:    games,
		eventBus: eventBus,
		cfg:      cfg,
		now:      time.Now,
	}
}

// NewServiceWithClock creates a betting service with an injected clock,
// used by tests and the lifecycle controller.
func NewServiceWithClock(ledger repository.Ledger, games repository.Game, eventBus event.Bus, cfg Config, now func() time.Time) Service {
	return &service{
		ledger:   ledger,
		games:    games,
		eventBus: eventBus,
		cfg:      cfg,
		now:      now,
	}
}

func (s *service) PlaceBet(ctx context.Context, gameID, bettorID string, side domain.Side, stake int64) (*domain.Wager, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlaceBetCalled, "game_id", gameID, "bettor_id", bettorID, "side", side, "stake", stake)

	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSide, side)
	}
	if stake < s.cfg.MinStake {
		return nil, fmt.Errorf("%w: minimum is %d", domain.ErrBelowMinimumStake, s.cfg.MinStake)
	}

	game, err := s.games.GetTrackedGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetGame, err)
	}
	if !game.BettingOpen(s.now()) {
		return nil, fmt.Errorf("%w: window closed at %s", domain.ErrBettingClosed, game.BettingClosesAt.Format(time.RFC3339))
	}

	// First contact seeds the account with the starting balance.
	if _, err := s.ledger.EnsureBettor(ctx, bettorID, s.cfg.StartingBalance); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToEnsureBettor, err)
	}

	multiplier := game.Odds.MultiplierFor(side)
	wager := &domain.Wager{
		ID:                    uuid.New(),
		GameID:                gameID,
		BettorID:              bettorID,
		Side:                  side,
		Stake:                 stake,
		MultiplierAtPlacement: multiplier,
		// Truncated, never rounded up. Locked in now so later odds
		// changes can never alter an existing wager.
		PotentialPayout: int64(float64(stake) * multiplier),
		PlacedAt:        s.now(),
	}

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	acct, err := tx.GetBettorForUpdate(ctx, bettorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLockBettor, err)
	}
	if acct.Balance < stake {
		return nil, &domain.InsufficientBalanceError{Balance: acct.Balance, Stake: stake}
	}

	if err := tx.InsertWager(ctx, wager); err != nil {
		if errors.Is(err, domain.ErrDuplicateBet) {
			// Report which side the bettor is already on. The lookup
			// runs outside the doomed transaction.
			if existing, lookupErr := s.ledger.GetWagerByGameAndBettor(ctx, gameID, bettorID); lookupErr == nil && existing != nil {
				return nil, &domain.DuplicateBetError{ExistingSide: existing.Side}
			}
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToInsertWager, err)
	}

	acct.Balance -= stake
	acct.TotalWagered += stake
	acct.BetsPlaced++
	if err := tx.UpdateBettor(ctx, acct); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToUpdateBettor, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	log.Info(LogMsgBetPlaced,
		"wager_id", wager.ID,
		"game_id", gameID,
		"bettor_id", bettorID,
		"side", side,
		"stake", stake,
		"potential_payout", wager.PotentialPayout)
	s.publish(ctx, event.NewBetPlacedEvent(wager))

	return wager, nil
}

// resolvableStates are the states a game may be claimed from for
// settlement. Manual resolution can fire before the window has even
// closed, so every pre-resolved state is eligible.
var resolvableStates = []domain.GameState{
	domain.GameStateAwaitingResult,
	domain.GameStateBettingClosed,
	domain.GameStateBettingOpen,
	domain.GameStateDetected,
}

func (s *service) Resolve(ctx context.Context, gameID string, winningSide domain.Side) (*domain.SettlementSummary, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgResolveCalled, "game_id", gameID, "winning_side", winningSide)

	if !winningSide.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSide, winningSide)
	}

	game, err := s.games.GetTrackedGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetGame, err)
	}
	if game.Resolved {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyResolved, gameID)
	}

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Claim the game with a compare-and-set before touching balances.
	// Zero rows on every candidate state means another resolver won.
	claimed := false
	for _, state := range resolvableStates {
		rows, casErr := tx.UpdateGameStateIfMatches(ctx, gameID, state, domain.GameStateResolved)
		if casErr != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToClaimGame, casErr)
		}
		if rows > 0 {
			claimed = true
			break
		}
	}
	if !claimed {
		log.Info(LogMsgResolveLostRace, "game_id", gameID)
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyResolved, gameID)
	}

	wagers, err := tx.ListWagersByGameForUpdate(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListWagers, err)
	}

	summary := &domain.SettlementSummary{
		GameID:      gameID,
		WinningSide: winningSide,
	}
	for i := range wagers {
		w := &wagers[i]
		if w.Settled {
			continue
		}

		acct, lockErr := tx.GetBettorForUpdate(ctx, w.BettorID)
		if lockErr != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToLockBettor, lockErr)
		}

		if w.Side == winningSide {
			// Winners receive the payout locked in at placement.
			acct.Balance += w.PotentialPayout
			acct.TotalWon += w.PotentialPayout - w.Stake
			acct.BetsWon++
			summary.WinningBets++
			summary.TotalPaidOut += w.PotentialPayout
		} else {
			// The stake was debited at placement, so losers only
			// accrue stats here.
			acct.TotalLost += w.Stake
			summary.LosingBets++
			summary.TotalLost += w.Stake
		}
		if updErr := tx.UpdateBettor(ctx, acct); updErr != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToUpdateBettor, updErr)
		}
		summary.WagersSettled++
	}

	if err := tx.MarkWagersSettled(ctx, gameID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSettleWagers, err)
	}
	if err := tx.RecordGameResult(ctx, gameID, winningSide); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToRecordResult, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	log.Info(LogMsgGameResolved,
		"game_id", gameID,
		"winning_side", winningSide,
		"wagers_settled", summary.WagersSettled,
		"total_paid_out", summary.TotalPaidOut)
	trackedWon := game.TrackedSide == winningSide
	s.publish(ctx, event.NewGameResolvedEvent(game.TrackedName, trackedWon, summary))

	return summary, nil
}

func (s *service) GetBalance(ctx context.Context, bettorID string) (*domain.BettorAccount, error) {
	acct, err := s.ledger.EnsureBettor(ctx, bettorID, s.cfg.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToEnsureBettor, err)
	}
	return acct, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.BettorAccount, error) {
	accounts, err := s.ledger.ListTopBettors(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBettor, err)
	}
	return accounts, nil
}

func (s *service) WagerHistory(ctx context.Context, bettorID string, limit int) ([]domain.Wager, error) {
	wagers, err := s.ledger.ListWagersByBettor(ctx, bettorID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListWagers, err)
	}
	return wagers, nil
}

func (s *service) ListGameWagers(ctx context.Context, gameID string) ([]domain.Wager, error) {
	wagers, err := s.ledger.ListWagersByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListWagers, err)
	}
	return wagers, nil
}

func (s *service) AdminAdjust(ctx context.Context, bettorID string, delta int64) (*domain.BettorAccount, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAdminAdjustCalled, "bettor_id", bettorID, "delta", delta)

	acct, err := s.ledger.AdjustBalance(ctx, bettorID, delta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToAdjustBalance, err)
	}

	log.Info(LogMsgBalanceAdjusted, "bettor_id", bettorID, "delta", delta, "balance", acct.Balance)
	return acct, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		logger.Debug(LogMsgEventPublishSkipped, "reason", LogReasonEventBusNil, "event_type", evt.Type)
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.Warn("Failed to publish event", "event_type", evt.Type, "error", err)
	}
}
