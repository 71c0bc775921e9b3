package worker

import (
	"context"
	"sync"
	"time"

	"github.com/kassalytics/tracker/internal/logger"
	"github.com/kassalytics/tracker/internal/repository"
)

// retentionHourUTC is the hour the daily retention sweep runs, chosen
// for the quietest window across the supported platforms.
const retentionHourUTC = 4

// RetentionWorker prunes old engine-event rows once a day
type RetentionWorker struct {
	events        repository.EventLog
	retentionDays int
	timer         *time.Timer
	shutdown      chan struct{}
	wg            sync.WaitGroup
	mu            sync.Mutex
}

// NewRetentionWorker creates a new RetentionWorker
func NewRetentionWorker(events repository.EventLog, retentionDays int) *RetentionWorker {
	return &RetentionWorker{
		events:        events,
		retentionDays: retentionDays,
		shutdown:      make(chan struct{}),
	}
}

// Start schedules the first sweep
func (w *RetentionWorker) Start() {
	w.scheduleNext()
}

func (w *RetentionWorker) scheduleNext() {
	duration := timeUntilNextSweep()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Timers can fire early under clock jitter; reschedule for
		// the remainder rather than sweeping twice.
		if rem := timeUntilNextSweep(); rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeSweep()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgRetentionScheduled, "next_sweep_at", time.Now().UTC().Add(duration))
}

// executeSweep prunes old events in a tracked goroutine
func (w *RetentionWorker) executeSweep() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgRetentionStarting, "retention_days", w.retentionDays)

		removed, err := w.events.CleanupOldEvents(ctx, w.retentionDays)
		if err != nil {
			log.Error(LogMsgRetentionFailed, "error", err)
			return
		}

		log.Info(LogMsgRetentionCompleted, "events_removed", removed)
	}()
}

// Shutdown cancels the pending timer and waits for an in-flight sweep
func (w *RetentionWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down retention worker")

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Retention worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Retention worker shutdown timeout")
		return ctx.Err()
	}
}

// timeUntilNextSweep calculates the duration until the next sweep hour
func timeUntilNextSweep() time.Duration {
	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), retentionHourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
