package betting

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/repository"
)

// MockLedger implements [repository.Ledger]
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetWager(ctx context.Context, id uuid.UUID) (*domain.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wager), args.Error(1)
}

func (m *MockLedger) GetWagerByGameAndBettor(ctx context.Context, gameID, bettorID string) (*domain.Wager, error) {
	args := m.Called(ctx, gameID, bettorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wager), args.Error(1)
}

func (m *MockLedger) ListWagersByGame(ctx context.Context, gameID string) ([]domain.Wager, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockLedger) ListWagersByBettor(ctx context.Context, bettorID string, limit int) ([]domain.Wager, error) {
	args := m.Called(ctx, bettorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockLedger) GetBettor(ctx context.Context, bettorID string) (*domain.BettorAccount, error) {
	args := m.Called(ctx, bettorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettorAccount), args.Error(1)
}

func (m *MockLedger) EnsureBettor(ctx context.Context, bettorID string, startingBalance int64) (*domain.BettorAccount, error) {
	args := m.Called(ctx, bettorID, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettorAccount), args.Error(1)
}

func (m *MockLedger) ListTopBettors(ctx context.Context, limit int) ([]domain.BettorAccount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BettorAccount), args.Error(1)
}

func (m *MockLedger) AdjustBalance(ctx context.Context, bettorID string, delta int64) (*domain.BettorAccount, error) {
	args := m.Called(ctx, bettorID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettorAccount), args.Error(1)
}

func (m *MockLedger) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.LedgerTx), args.Error(1)
}

// MockLedgerTx implements [repository.LedgerTx]
type MockLedgerTx struct {
	mock.Mock
}

func (m *MockLedgerTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerTx) GetBettorForUpdate(ctx context.Context, bettorID string) (*domain.BettorAccount, error) {
	args := m.Called(ctx, bettorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettorAccount), args.Error(1)
}

func (m *MockLedgerTx) UpdateBettor(ctx context.Context, acct *domain.BettorAccount) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockLedgerTx) InsertWager(ctx context.Context, wager *domain.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockLedgerTx) ListWagersByGameForUpdate(ctx context.Context, gameID string) ([]domain.Wager, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockLedgerTx) MarkWagersSettled(ctx context.Context, gameID string) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *MockLedgerTx) UpdateGameStateIfMatches(ctx context.Context, gameID string, expectedState, newState domain.GameState) (int64, error) {
	args := m.Called(ctx, gameID, expectedState, newState)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockLedgerTx) RecordGameResult(ctx context.Context, gameID string, winningSide domain.Side) error {
	args := m.Called(ctx, gameID, winningSide)
	return args.Error(0)
}

// MockGameRepo implements [repository.Game]
type MockGameRepo struct {
	mock.Mock
}

func (m *MockGameRepo) CreateTrackedGame(ctx context.Context, game *domain.TrackedGame) (bool, error) {
	args := m.Called(ctx, game)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameRepo) GetTrackedGame(ctx context.Context, gameID string) (*domain.TrackedGame, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedGame), args.Error(1)
}

func (m *MockGameRepo) ListUnresolvedGames(ctx context.Context) ([]domain.TrackedGame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedGame), args.Error(1)
}

func (m *MockGameRepo) CountUnresolvedGames(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockGameRepo) ListGamesInState(ctx context.Context, state domain.GameState) ([]domain.TrackedGame, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedGame), args.Error(1)
}

func (m *MockGameRepo) UpdateGameState(ctx context.Context, gameID string, state domain.GameState) error {
	args := m.Called(ctx, gameID, state)
	return args.Error(0)
}

func (m *MockGameRepo) UpdateGameStateIfMatches(ctx context.Context, gameID string, expectedState, newState domain.GameState) (int64, error) {
	args := m.Called(ctx, gameID, expectedState, newState)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockGameRepo) SetNotificationRef(ctx context.Context, gameID, ref string) error {
	args := m.Called(ctx, gameID, ref)
	return args.Error(0)
}

func (m *MockGameRepo) MarkNeedsManual(ctx context.Context, gameID string) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

// MockBus implements [event.Bus]
type MockBus struct {
	mock.Mock
}

func (m *MockBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}
