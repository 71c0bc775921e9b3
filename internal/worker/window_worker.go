package worker

import (
	"context"
	"time"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/logger"
	"github.com/kassalytics/tracker/internal/repository"
)

// WindowCloser closes one game's betting window. Satisfied by the
// tracker.
type WindowCloser interface {
	CloseGameWindow(ctx context.Context, gameID string) error
}

// WindowWorker closes betting windows at their exact deadline instead
// of waiting for the next lifecycle sweep. The sweep stays in place as
// the backstop for timers lost to a restart.
type WindowWorker struct {
	BaseWorker
	closer WindowCloser
	games  repository.Game
}

// NewWindowWorker creates a new WindowWorker
func NewWindowWorker(closer WindowCloser, games repository.Game) *WindowWorker {
	w := &WindowWorker{
		closer: closer,
		games:  games,
	}
	w.init()
	return w
}

// Start schedules closes for any games already open at startup
func (w *WindowWorker) Start() {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	open, err := w.games.ListGamesInState(ctx, domain.GameStateBettingOpen)
	if err != nil {
		log.Error(LogMsgFailedToListOpenOnStartup, "error", err)
		return
	}
	for i := range open {
		w.scheduleClose(open[i].GameID, open[i].BettingClosesAt)
	}
}

// Subscribe registers the worker for game announcements
func (w *WindowWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.GameDetected, w.handleGameDetected)
}

func (w *WindowWorker) handleGameDetected(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.GameDetectedPayloadV1](e.Payload)
	if err != nil {
		return err
	}
	w.scheduleClose(payload.GameID, payload.BettingClosesAt)
	return nil
}

func (w *WindowWorker) scheduleClose(gameID string, closesAt time.Time) {
	duration := time.Until(closesAt)

	log := logger.FromContext(context.Background())
	log.Info(LogMsgSchedulingWindowClose, "game_id", gameID, "duration", duration)

	if duration <= 0 {
		w.closeWindow(gameID)
		return
	}

	timer := time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		w.closeWindow(gameID)
		w.removeTimer(gameID)
	})
	w.registerTimer(gameID, timer)
}

// closeWindow closes a window in a tracked goroutine
func (w *WindowWorker) closeWindow(gameID string) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgExecutingWindowClose, "game_id", gameID)

		if err := w.closer.CloseGameWindow(ctx, gameID); err != nil {
			log.Error(LogMsgFailedToCloseWindow, "game_id", gameID, "error", err)
		}
	}()
}

// Shutdown cancels pending timers and waits for in-flight closes
func (w *WindowWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, "window worker")
}
