package bootstrap

import (
	"context"
	"log/slog"

	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/scheduler"
	"github.com/kassalytics/tracker/internal/server"
	"github.com/kassalytics/tracker/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	WindowWorker       *worker.WindowWorker
	RetentionWorker    *worker.RetentionWorker
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all engine components.
// The order matters:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and workers (cancel pending timers, drain jobs)
// 3. Event publisher (flush pending events to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.WindowWorker != nil {
		if err := components.WindowWorker.Shutdown(ctx); err != nil {
			slog.Error("Window worker shutdown failed", "error", err)
		}
	}

	if components.RetentionWorker != nil {
		if err := components.RetentionWorker.Shutdown(ctx); err != nil {
			slog.Error("Retention worker shutdown failed", "error", err)
		}
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
