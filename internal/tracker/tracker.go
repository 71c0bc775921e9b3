package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kassalytics/tracker/internal/betting"
	"github.com/kassalytics/tracker/internal/concurrency"
	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/logger"
	"github.com/kassalytics/tracker/internal/odds"
	"github.com/kassalytics/tracker/internal/registry"
	"github.com/kassalytics/tracker/internal/repository"
	"github.com/kassalytics/tracker/internal/riot"
)

// Provider is the slice of the match-data API the tracker consumes.
// Satisfied by the riot client; tests substitute a mock.
type Provider interface {
	ActiveGame(ctx context.Context, puuid string) (*riot.CurrentGameInfo, error)
	LeagueEntries(ctx context.Context, puuid string) ([]riot.LeagueEntry, error)
	ChampionName(ctx context.Context, championID int64) (string, error)
	MatchResult(ctx context.Context, matchID, puuid string) (*domain.MatchResult, error)
}

// Notifier receives lifecycle notifications for tracked games. The
// Discord frontend implements it; NopNotifier serves headless runs.
type Notifier interface {
	// GameOpened announces a new game and returns a reference to the
	// posted message so later updates can edit it.
	GameOpened(ctx context.Context, game *domain.TrackedGame) (string, error)
	BettingClosed(ctx context.Context, game *domain.TrackedGame) error
	GameResolved(ctx context.Context, game *domain.TrackedGame, summary *domain.SettlementSummary) error
	GameNeedsManual(ctx context.Context, game *domain.TrackedGame) error
}

// NopNotifier discards all notifications
type NopNotifier struct{}

func (NopNotifier) GameOpened(context.Context, *domain.TrackedGame) (string, error) {
	return "", nil
}
func (NopNotifier) BettingClosed(context.Context, *domain.TrackedGame) error { return nil }
func (NopNotifier) GameResolved(context.Context, *domain.TrackedGame, *domain.SettlementSummary) error {
	return nil
}
func (NopNotifier) GameNeedsManual(context.Context, *domain.TrackedGame) error { return nil }

// Config carries the tracker's timing parameters
type Config struct {
	BettingWindow  time.Duration
	ResultDeadline time.Duration
	MultiplierMin  float64
	MultiplierMax  float64
}

// Tracker runs the detection and lifecycle sweeps for tracked games.
// Each sweep is safe to run concurrently with the others: per-game
// named locks serialize transitions for the same game, and every state
// change goes through a compare-and-set.
type Tracker struct {
	registry registry.Service
	betting  betting.Service
	games    repository.Game
	provider Provider
	notifier Notifier
	eventBus event.Bus
	locks    *concurrency.LockManager
	cfg      Config
	now      func() time.Time
}

// New creates a new Tracker
func New(reg registry.Service, bet betting.Service, games repository.Game, provider Provider, notifier Notifier, eventBus event.Bus, cfg Config) *Tracker {
	return &Tracker{
		registry: reg,
		betting:  bet,
		games:    games,
		provider: provider,
		notifier: notifier,
		eventBus: eventBus,
		locks:    concurrency.NewLockManager(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock overrides the tracker's clock. Test helper.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// PollAccounts sweeps every enabled account for a live ranked solo
// queue game and registers new ones with betting open. A failure on
// one account never stops the sweep.
func (t *Tracker) PollAccounts(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgPollSweepStarted)

	accounts, err := t.registry.ListTrackedAccounts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListAccounts, err)
	}

	for i := range accounts {
		if err := t.pollAccount(ctx, &accounts[i]); err != nil {
			log.Warn(LogMsgAccountPollFailed,
				"puuid", accounts[i].PUUID,
				"display_name", accounts[i].DisplayName,
				"error", err)
		}
	}
	return nil
}

func (t *Tracker) pollAccount(ctx context.Context, account *domain.TrackedAccount) error {
	log := logger.FromContext(ctx)

	info, err := t.provider.ActiveGame(ctx, account.PUUID)
	if err != nil {
		return err
	}
	if info == nil {
		return nil
	}
	if info.GameQueueConfigID != domain.QueueRankedSolo {
		log.Debug(LogMsgGameSkippedQueue,
			"game_id", info.MatchID(),
			"queue", info.GameQueueConfigID)
		return nil
	}

	gameID := info.MatchID()

	// Cheap existence check before the expensive roster enrichment;
	// the registry's idempotent create still guards the race.
	if existing, getErr := t.registry.GetGame(ctx, gameID); getErr == nil && existing != nil {
		return nil
	} else if getErr != nil && !errors.Is(getErr, domain.ErrGameNotFound) {
		return getErr
	}

	game, err := t.buildGame(ctx, account, info)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToEnrichRoster, err)
	}

	created, err := t.registry.RegisterGame(ctx, game)
	if err != nil {
		if errors.Is(err, domain.ErrTrackingCapReached) {
			log.Warn(LogMsgGameDetected, "game_id", gameID, "skipped", "tracking cap reached")
			return nil
		}
		return fmt.Errorf("%s: %w", ErrContextFailedToRegisterGame, err)
	}
	if !created {
		return nil
	}

	log.Info(LogMsgGameDetected,
		"game_id", gameID,
		"tracked_name", account.DisplayName,
		"tracked_side", game.TrackedSide,
		"betting_closes_at", game.BettingClosesAt)

	ref, notifyErr := t.notifier.GameOpened(ctx, game)
	if notifyErr != nil {
		log.Warn(LogMsgNotifyFailed, "game_id", gameID, "error", notifyErr)
		return nil
	}
	if ref != "" {
		if refErr := t.games.SetNotificationRef(ctx, gameID, ref); refErr != nil {
			log.Warn("Failed to store notification ref", "game_id", gameID, "error", refErr)
		}
		game.NotificationRef = ref
	}
	return nil
}

// buildGame snapshots the live game's rosters and prices the odds.
func (t *Tracker) buildGame(ctx context.Context, account *domain.TrackedAccount, info *riot.CurrentGameInfo) (*domain.TrackedGame, error) {
	var rosters domain.Rosters
	trackedSide := domain.SideBlue

	for i := range info.Participants {
		p := &info.Participants[i]

		snapshot, err := t.snapshotParticipant(ctx, p)
		if err != nil {
			return nil, err
		}

		side := domain.SideRed
		if p.TeamID == riot.TeamIDBlue {
			side = domain.SideBlue
		}
		if side == domain.SideBlue {
			rosters.Blue = append(rosters.Blue, snapshot)
		} else {
			rosters.Red = append(rosters.Red, snapshot)
		}
		if p.PUUID == account.PUUID {
			trackedSide = side
		}
	}

	now := t.now()
	return &domain.TrackedGame{
		GameID:          info.MatchID(),
		Region:          info.PlatformID,
		State:           domain.GameStateBettingOpen,
		TrackedPUUID:    account.PUUID,
		TrackedName:     account.DisplayName,
		TrackedSide:     trackedSide,
		Participants:    rosters,
		Odds:            odds.Compute(rosters, t.cfg.MultiplierMin, t.cfg.MultiplierMax),
		OpenedAt:        now,
		BettingClosesAt: now.Add(t.cfg.BettingWindow),
	}, nil
}

func (t *Tracker) snapshotParticipant(ctx context.Context, p *riot.CurrentGameParticipant) (domain.ParticipantSnapshot, error) {
	snapshot := domain.ParticipantSnapshot{
		ChampionID:  int(p.ChampionID),
		DisplayName: p.RiotID,
	}

	// Spectator payloads occasionally omit the riot id; fall back to
	// the champion name so the roster stays readable.
	if snapshot.DisplayName == "" {
		if name, err := t.provider.ChampionName(ctx, p.ChampionID); err == nil {
			snapshot.DisplayName = name
		}
	}

	entries, err := t.provider.LeagueEntries(ctx, p.PUUID)
	if err != nil {
		return snapshot, err
	}
	if solo := riot.SoloQueueEntry(entries); solo != nil {
		snapshot.RankTier = solo.Tier
		snapshot.RankDivision = solo.Rank
		snapshot.LeaguePoints = solo.LeaguePoints
		snapshot.SeasonWins = solo.Wins
		snapshot.SeasonLosses = solo.Losses
	}
	return snapshot, nil
}

// CloseExpiredWindows transitions games whose betting window has
// elapsed from betting_open to betting_closed.
func (t *Tracker) CloseExpiredWindows(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgWindowSweepStarted)

	games, err := t.games.ListGamesInState(ctx, domain.GameStateBettingOpen)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListGames, err)
	}

	now := t.now()
	for i := range games {
		game := &games[i]
		if now.Before(game.BettingClosesAt) {
			continue
		}

		var closeErr error
		t.locks.WithLock(game.GameID, func() {
			closeErr = t.closeWindow(ctx, game)
		})
		if closeErr != nil {
			log.Warn(LogMsgNotifyFailed, "game_id", game.GameID, "error", closeErr)
		}
	}
	return nil
}

func (t *Tracker) closeWindow(ctx context.Context, game *domain.TrackedGame) error {
	log := logger.FromContext(ctx)

	rows, err := t.games.UpdateGameStateIfMatches(ctx, game.GameID,
		domain.GameStateBettingOpen, domain.GameStateBettingClosed)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCloseWindow, err)
	}
	if rows == 0 {
		return nil
	}
	game.State = domain.GameStateBettingClosed

	wagers, err := t.betting.ListGameWagers(ctx, game.GameID)
	if err != nil {
		log.Warn("Failed to list wagers for window-closed event", "game_id", game.GameID, "error", err)
	}
	var totalStaked int64
	for _, w := range wagers {
		totalStaked += w.Stake
	}

	log.Info(LogMsgBettingWindowClosed,
		"game_id", game.GameID,
		"wager_count", len(wagers),
		"total_staked", totalStaked)
	t.publish(ctx, event.NewBettingClosedEvent(game, len(wagers), totalStaked))

	if notifyErr := t.notifier.BettingClosed(ctx, game); notifyErr != nil {
		log.Warn(LogMsgNotifyFailed, "game_id", game.GameID, "error", notifyErr)
	}
	return nil
}

// CloseGameWindow closes the betting window of one game by id. Used by
// the timer-driven window worker; the periodic sweep remains the
// backstop when a timer is lost to a restart.
func (t *Tracker) CloseGameWindow(ctx context.Context, gameID string) error {
	game, err := t.games.GetTrackedGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListGames, err)
	}
	if game.State != domain.GameStateBettingOpen {
		return nil
	}

	var closeErr error
	t.locks.WithLock(gameID, func() {
		closeErr = t.closeWindow(ctx, game)
	})
	return closeErr
}

// SweepResults advances closed games toward resolution. Games still
// visible on the spectator endpoint stay put; games that left it move
// to awaiting_result; finished games are settled from match history.
// A provider outage only delays the sweep, it never decides a game.
func (t *Tracker) SweepResults(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgResultSweepStarted)

	closed, err := t.games.ListGamesInState(ctx, domain.GameStateBettingClosed)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListGames, err)
	}
	for i := range closed {
		game := &closed[i]
		t.locks.WithLock(game.GameID, func() {
			t.checkStillLive(ctx, game)
		})
	}

	awaiting, err := t.games.ListGamesInState(ctx, domain.GameStateAwaitingResult)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListGames, err)
	}
	for i := range awaiting {
		game := &awaiting[i]
		t.locks.WithLock(game.GameID, func() {
			t.fetchResult(ctx, game)
		})
	}
	return nil
}

// checkStillLive moves a betting_closed game to awaiting_result once
// the spectator endpoint stops reporting it.
func (t *Tracker) checkStillLive(ctx context.Context, game *domain.TrackedGame) {
	log := logger.FromContext(ctx)

	info, err := t.provider.ActiveGame(ctx, game.TrackedPUUID)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			log.Warn(LogMsgProviderUnavailable, "game_id", game.GameID, "error", err)
			return
		}
		log.Warn(LogMsgAccountPollFailed, "game_id", game.GameID, "error", err)
		return
	}
	if info != nil && info.MatchID() == game.GameID {
		// Still in progress.
		return
	}

	rows, err := t.games.UpdateGameStateIfMatches(ctx, game.GameID,
		domain.GameStateBettingClosed, domain.GameStateAwaitingResult)
	if err != nil {
		log.Warn("Failed to transition game", "game_id", game.GameID, "error", err)
		return
	}
	if rows > 0 {
		log.Info(LogMsgGameLeftSpectator, "game_id", game.GameID)
	}
}

// fetchResult settles an awaiting_result game from match history, or
// flags it for manual resolution once the deadline passes.
func (t *Tracker) fetchResult(ctx context.Context, game *domain.TrackedGame) {
	log := logger.FromContext(ctx)

	result, err := t.provider.MatchResult(ctx, game.GameID, game.TrackedPUUID)
	switch {
	case err == nil:
		t.resolveGame(ctx, game, result)
	case errors.Is(err, domain.ErrGameNotFound):
		if t.now().Sub(game.OpenedAt) > t.cfg.ResultDeadline {
			t.flagManual(ctx, game)
			return
		}
		log.Debug(LogMsgResultNotReady, "game_id", game.GameID)
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Warn(LogMsgProviderUnavailable, "game_id", game.GameID, "error", err)
	default:
		log.Warn("Failed to fetch match result", "game_id", game.GameID, "error", err)
	}
}

func (t *Tracker) resolveGame(ctx context.Context, game *domain.TrackedGame, result *domain.MatchResult) {
	log := logger.FromContext(ctx)

	summary, err := t.betting.Resolve(ctx, game.GameID, result.WinningSide)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyResolved) {
			t.locks.Forget(game.GameID)
			return
		}
		log.Error(ErrContextFailedToResolveGame, "game_id", game.GameID, "error", err)
		return
	}

	log.Info(LogMsgGameResolvedByPoll,
		"game_id", game.GameID,
		"winning_side", summary.WinningSide,
		"wagers_settled", summary.WagersSettled,
		"duration", result.Duration)

	if notifyErr := t.notifier.GameResolved(ctx, game, summary); notifyErr != nil {
		log.Warn(LogMsgNotifyFailed, "game_id", game.GameID, "error", notifyErr)
	}
	t.locks.Forget(game.GameID)
}

func (t *Tracker) flagManual(ctx context.Context, game *domain.TrackedGame) {
	log := logger.FromContext(ctx)

	if game.NeedsManual {
		return
	}
	if err := t.games.MarkNeedsManual(ctx, game.GameID); err != nil {
		log.Warn("Failed to flag game for manual resolution", "game_id", game.GameID, "error", err)
		return
	}
	game.NeedsManual = true

	log.Warn(LogMsgGameFlaggedManual, "game_id", game.GameID, "opened_at", game.OpenedAt)
	t.publish(ctx, event.NewGameNeedsManualEvent(game.GameID, ManualReasonResultDeadline))

	if notifyErr := t.notifier.GameNeedsManual(ctx, game); notifyErr != nil {
		log.Warn(LogMsgNotifyFailed, "game_id", game.GameID, "error", notifyErr)
	}
}

func (t *Tracker) publish(ctx context.Context, evt event.Event) {
	if t.eventBus == nil {
		return
	}
	if err := t.eventBus.Publish(ctx, evt); err != nil {
		logger.Warn("Failed to publish event", "event_type", evt.Type, "error", err)
	}
}
