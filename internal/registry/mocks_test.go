package registry

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/riot"
)

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

// MockAccountRepo implements [repository.Account]
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) UpsertTrackedAccount(ctx context.Context, account *domain.TrackedAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepo) GetTrackedAccount(ctx context.Context, puuid string) (*domain.TrackedAccount, error) {
	args := m.Called(ctx, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedAccount), args.Error(1)
}

func (m *MockAccountRepo) ListEnabledAccounts(ctx context.Context) ([]domain.TrackedAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedAccount), args.Error(1)
}

func (m *MockAccountRepo) DisableTrackedAccount(ctx context.Context, puuid string) error {
	args := m.Called(ctx, puuid)
	return args.Error(0)
}

// MockResolver implements AccountResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.Account, error) {
	args := m.Called(ctx, gameName, tagLine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*riot.Account), args.Error(1)
}

func (m *MockResolver) Platform() string {
	args := m.Called()
	return args.String(0)
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
