package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
)

// mockCloser records window-close calls
type mockCloser struct {
	mu     sync.Mutex
	closed []string
	done   chan struct{}
}

func (m *mockCloser) CloseGameWindow(ctx context.Context, gameID string) error {
	m.mu.Lock()
	m.closed = append(m.closed, gameID)
	m.mu.Unlock()
	select {
	case m.done <- struct{}{}:
	default:
	}
	return nil
}

func (m *mockCloser) closedGames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.closed...)
}

// mockGameLister implements the repository.Game surface the worker uses
type mockGameLister struct {
	mock.Mock
}

func (m *mockGameLister) CreateTrackedGame(ctx context.Context, game *domain.TrackedGame) (bool, error) {
	return false, nil
}
func (m *mockGameLister) GetTrackedGame(ctx context.Context, gameID string) (*domain.TrackedGame, error) {
	return nil, domain.ErrGameNotFound
}
func (m *mockGameLister) ListUnresolvedGames(ctx context.Context) ([]domain.TrackedGame, error) {
	return nil, nil
}
func (m *mockGameLister) CountUnresolvedGames(ctx context.Context) (int, error) { return 0, nil }
func (m *mockGameLister) ListGamesInState(ctx context.Context, state domain.GameState) ([]domain.TrackedGame, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedGame), args.Error(1)
}
func (m *mockGameLister) UpdateGameState(ctx context.Context, gameID string, state domain.GameState) error {
	return nil
}
func (m *mockGameLister) UpdateGameStateIfMatches(ctx context.Context, gameID string, expectedState, newState domain.GameState) (int64, error) {
	return 0, nil
}
func (m *mockGameLister) SetNotificationRef(ctx context.Context, gameID, ref string) error {
	return nil
}
func (m *mockGameLister) MarkNeedsManual(ctx context.Context, gameID string) error { return nil }

func TestWindowWorker_ClosesOnSchedule(t *testing.T) {
	closer := &mockCloser{done: make(chan struct{}, 1)}
	games := new(mockGameLister)
	w := NewWindowWorker(closer, games)
	defer w.Shutdown(context.Background())

	bus := event.NewMemoryBus()
	w.Subscribe(bus)

	err := bus.Publish(context.Background(), event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.GameDetected,
		Payload: event.GameDetectedPayloadV1{
			GameID:          "EUW1_100",
			BettingClosesAt: time.Now().Add(20 * time.Millisecond),
		},
	})
	assert.NoError(t, err)

	select {
	case <-closer.done:
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for window close")
	}
	assert.Equal(t, []string{"EUW1_100"}, closer.closedGames())
}

func TestWindowWorker_PastDeadlineClosesImmediately(t *testing.T) {
	closer := &mockCloser{done: make(chan struct{}, 1)}
	games := new(mockGameLister)
	w := NewWindowWorker(closer, games)
	defer w.Shutdown(context.Background())

	bus := event.NewMemoryBus()
	w.Subscribe(bus)

	err := bus.Publish(context.Background(), event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.GameDetected,
		Payload: event.GameDetectedPayloadV1{
			GameID:          "EUW1_200",
			BettingClosesAt: time.Now().Add(-time.Minute),
		},
	})
	assert.NoError(t, err)

	select {
	case <-closer.done:
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for immediate close")
	}
}

func TestWindowWorker_StartSchedulesExistingGames(t *testing.T) {
	closer := &mockCloser{done: make(chan struct{}, 1)}
	games := new(mockGameLister)
	games.On("ListGamesInState", mock.Anything, domain.GameStateBettingOpen).
		Return([]domain.TrackedGame{
			{GameID: "EUW1_300", State: domain.GameStateBettingOpen, BettingClosesAt: time.Now().Add(10 * time.Millisecond)},
		}, nil)

	w := NewWindowWorker(closer, games)
	defer w.Shutdown(context.Background())
	w.Start()

	select {
	case <-closer.done:
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for startup-scheduled close")
	}
	assert.Equal(t, []string{"EUW1_300"}, closer.closedGames())
}

func TestWindowWorker_ShutdownCancelsTimers(t *testing.T) {
	closer := &mockCloser{done: make(chan struct{}, 1)}
	games := new(mockGameLister)
	w := NewWindowWorker(closer, games)

	w.scheduleClose("EUW1_400", time.Now().Add(time.Hour))

	err := w.Shutdown(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, closer.closedGames())
}
