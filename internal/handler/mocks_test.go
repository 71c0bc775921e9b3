package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/repository"
)

// MockBettingService mocks betting.Service
type MockBettingService struct {
	mock.Mock
}

func (m *MockBettingService) PlaceBet(ctx context.Context, gameID, bettorID string, side domain.Side, stake int64) (*domain.Wager, error) {
	args := m.Called(ctx, gameID, bettorID, side, stake)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wager), args.Error(1)
}

func (m *MockBettingService) Resolve(ctx context.Context, gameID string, winningSide domain.Side) (*domain.SettlementSummary, error) {
	args := m.Called(ctx, gameID, winningSide)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementSummary), args.Error(1)
}

func (m *MockBettingService) GetBalance(ctx context.Context, bettorID string) (*domain.BettorAccount, error) {
	args := m.Called(ctx, bettorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettorAccount), args.Error(1)
}

func (m *MockBettingService) Leaderboard(ctx context.Context, limit int) ([]domain.BettorAccount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BettorAccount), args.Error(1)
}

func (m *MockBettingService) WagerHistory(ctx context.Context, bettorID string, limit int) ([]domain.Wager, error) {
	args := m.Called(ctx, bettorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockBettingService) ListGameWagers(ctx context.Context, gameID string) ([]domain.Wager, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockBettingService) AdminAdjust(ctx context.Context, bettorID string, delta int64) (*domain.BettorAccount, error) {
	args := m.Called(ctx, bettorID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettorAccount), args.Error(1)
}

// MockRegistryService mocks registry.Service
type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) TrackAccount(ctx context.Context, gameName, tagLine string) (*domain.TrackedAccount, error) {
	args := m.Called(ctx, gameName, tagLine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedAccount), args.Error(1)
}

func (m *MockRegistryService) UntrackAccount(ctx context.Context, gameName, tagLine string) error {
	args := m.Called(ctx, gameName, tagLine)
	return args.Error(0)
}

func (m *MockRegistryService) ListTrackedAccounts(ctx context.Context) ([]domain.TrackedAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedAccount), args.Error(1)
}

func (m *MockRegistryService) RegisterGame(ctx context.Context, game *domain.TrackedGame) (bool, error) {
	args := m.Called(ctx, game)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistryService) GetGame(ctx context.Context, gameID string) (*domain.TrackedGame, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedGame), args.Error(1)
}

func (m *MockRegistryService) ListUnresolvedGames(ctx context.Context) ([]domain.TrackedGame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedGame), args.Error(1)
}

// MockEventLog mocks repository.EventLog
type MockEventLog struct {
	mock.Mock
}

func (m *MockEventLog) LogEvent(ctx context.Context, eventType string, gameID *string, payload, metadata map[string]interface{}) error {
	args := m.Called(ctx, eventType, gameID, payload, metadata)
	return args.Error(0)
}

func (m *MockEventLog) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EventLogEntry), args.Error(1)
}

func (m *MockEventLog) GetEventsByGame(ctx context.Context, gameID string, limit int) ([]repository.EventLogEntry, error) {
	args := m.Called(ctx, gameID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EventLogEntry), args.Error(1)
}

func (m *MockEventLog) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
