package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kassalytics/tracker/internal/betting"
	"github.com/kassalytics/tracker/internal/bootstrap"
	"github.com/kassalytics/tracker/internal/config"
	"github.com/kassalytics/tracker/internal/database"
	"github.com/kassalytics/tracker/internal/discord"
	"github.com/kassalytics/tracker/internal/eventlog"
	"github.com/kassalytics/tracker/internal/registry"
	"github.com/kassalytics/tracker/internal/riot"
	"github.com/kassalytics/tracker/internal/scheduler"
	"github.com/kassalytics/tracker/internal/server"
	"github.com/kassalytics/tracker/internal/tracker"
	"github.com/kassalytics/tracker/internal/worker"
)

const (
	workerPoolSize  = 4
	workerQueueSize = 32

	// Sweep cadences for the lifecycle fallbacks. The window worker
	// closes windows on exact timers; these sweeps catch what it
	// misses across restarts.
	windowSweepInterval = 30 * time.Second
	resultSweepInterval = time.Minute

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	ctx := context.Background()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	eventLogService := eventlog.NewService(repos.EventLog)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		EventLogService: eventLogService,
	}); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	riotClient, err := riot.NewClient(cfg.RiotAPIKey, cfg.RiotPlatform, riot.WithThrottle(cfg.PollThrottle))
	if err != nil {
		slog.Error("Failed to create match data client", "error", err)
		os.Exit(1)
	}

	registryService := registry.NewService(repos.Game, repos.Account, riotClient, publisher, cfg.MaxTrackedGames)
	bettingService := betting.NewService(repos.Ledger, repos.Game, publisher, betting.Config{
		MinStake:        cfg.MinStake,
		StartingBalance: cfg.StartingBalance,
	})

	var notifier tracker.Notifier = tracker.NopNotifier{}
	if cfg.BotNotifyURL != "" {
		notifier = discord.NewNotifyClient(cfg.BotNotifyURL)
		slog.Info("Discord announcements enabled", "notify_url", cfg.BotNotifyURL)
	} else {
		slog.Info("Discord announcements disabled, running headless")
	}

	trk := tracker.New(registryService, bettingService, repos.Game, riotClient, notifier, publisher, tracker.Config{
		BettingWindow:  cfg.BettingWindow,
		ResultDeadline: cfg.ResultDeadline,
		MultiplierMin:  cfg.MultiplierMin,
		MultiplierMax:  cfg.MultiplierMax,
	})

	windowWorker := worker.NewWindowWorker(trk, repos.Game)
	windowWorker.Subscribe(eventBus)
	windowWorker.Start()

	retentionWorker := worker.NewRetentionWorker(repos.EventLog, cfg.EventRetentionDays)
	retentionWorker.Start()

	pool := worker.NewPool(workerPoolSize, workerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.PollInterval, worker.JobFunc(trk.PollAccounts))
	sched.Schedule(windowSweepInterval, worker.JobFunc(trk.CloseExpiredWindows))
	sched.Schedule(resultSweepInterval, worker.JobFunc(trk.SweepResults))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, bettingService, registryService, repos.EventLog)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()
	slog.Info("Engine started", "port", cfg.Port, "poll_interval", cfg.PollInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		WindowWorker:       windowWorker,
		RetentionWorker:    retentionWorker,
		ResilientPublisher: publisher,
	})
}
