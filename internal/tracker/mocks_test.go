package tracker

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/riot"
)

// MockRegistry implements [registry.Service]
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) TrackAccount(ctx context.Context, gameName, tagLine string) (*domain.TrackedAccount, error) {
	args := m.Called(ctx, gameName, tagLine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedAccount), args.Error(1)
}

func (m *MockRegistry) UntrackAccount(ctx context.Context, gameName, tagLine string) error {
	args := m.Called(ctx, gameName, tagLine)
	return args.Error(0)
}

func (m *MockRegistry) ListTrackedAccounts(ctx context.Context) ([]domain.TrackedAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedAccount), args.Error(1)
}

func (m *MockRegistry) RegisterGame(ctx context.Context, game *domain.TrackedGame) (bool, error) {
	args := m.Called(ctx, game)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistry) GetGame(ctx context.Context, gameID string) (*domain.TrackedGame, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedGame), args.Error(1)
}

func (m *MockRegistry) ListUnresolvedGames(ctx context.Context) ([]domain.TrackedGame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedGame), args.Error(1)
}

// MockBetting implements [betting.Service]
type MockBetting struct {
	mock.Mock
}

func (m *MockBetting) PlaceBet(ctx context.Context, gameID, bettorID string, side domain.Side, stake int64) (*domain.Wager, error) {
	args := m.Called(ctx, gameID, bettorID, side, stake)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wager), args.Error(1)
}

func (m *MockBetting) Resolve(ctx context.Context, gameID string, winningSide domain.Side) (*domain.SettlementSummary, error) {
	args := m.Called(ctx, gameID, winningSide)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementSummary), args.Error(1)
}

func (m *MockBetting) GetBalance(ctx context.Context, bettorID string) (*domain.BettorAccount, error) {
	args := m.Called(ctx, bettorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettorAccount), args.Error(1)
}

func (m *MockBetting) Leaderboard(ctx context.Context, limit int) ([]domain.BettorAccount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BettorAccount), args.Error(1)
}

func (m *MockBetting) WagerHistory(ctx context.Context, bettorID string, limit int) ([]domain.Wager, error) {
	args := m.Called(ctx, bettorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockBetting) ListGameWagers(ctx context.Context, gameID string) ([]domain.Wager, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wager), args.Error(1)
}

func (m *MockBetting) AdminAdjust(ctx context.Context, bettorID string, delta int64) (*domain.BettorAccount, error) {
	args := m.Called(ctx, bettorID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BettorAccount), args.Error(1)
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

// MockProvider implements Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ActiveGame(ctx context.Context, puuid string) (*riot.CurrentGameInfo, error) {
	args := m.Called(ctx, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*riot.CurrentGameInfo), args.Error(1)
}

func (m *MockProvider) LeagueEntries(ctx context.Context, puuid string) ([]riot.LeagueEntry, error) {
	args := m.Called(ctx, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]riot.LeagueEntry), args.Error(1)
}

func (m *MockProvider) ChampionName(ctx context.Context, championID int64) (string, error) {
	args := m.Called(ctx, championID)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) MatchResult(ctx context.Context, matchID, puuid string) (*domain.MatchResult, error) {
	args := m.Called(ctx, matchID, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchResult), args.Error(1)
}

// MockNotifier implements Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) GameOpened(ctx context.Context, game *domain.TrackedGame) (string, error) {
	args := m.Called(ctx, game)
	return args.String(0), args.Error(1)
}

func (m *MockNotifier) BettingClosed(ctx context.Context, game *domain.TrackedGame) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockNotifier) GameResolved(ctx context.Context, game *domain.TrackedGame, summary *domain.SettlementSummary) error {
	args := m.Called(ctx, game, summary)
	return args.Error(0)
}

func (m *MockNotifier) GameNeedsManual(ctx context.Context, game *domain.TrackedGame) error {
	args := m.Called(ctx, game)
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
