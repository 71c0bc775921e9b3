package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/logger"
	"github.com/kassalytics/tracker/internal/repository"
	"github.com/kassalytics/tracker/internal/riot"
)

// Service defines the interface for tracking subscriptions and the
// tracked-game registry
type Service interface {
	TrackAccount(ctx context.Context, gameName, tagLine string) (*domain.TrackedAccount, error)
	UntrackAccount(ctx context.Context, gameName, tagLine string) error
	ListTrackedAccounts(ctx context.Context) ([]domain.TrackedAccount, error)

	// RegisterGame stores a newly detected game. Returns false with a
	// nil error when the game is already registered; the cap on
	// concurrent tracked games is enforced here.
	RegisterGame(ctx context.Context, game *domain.TrackedGame) (bool, error)
	GetGame(ctx context.Context, gameID string) (*domain.TrackedGame, error)
	ListUnresolvedGames(ctx context.Context) ([]domain.TrackedGame, error)
}

// AccountResolver resolves a riot id to an account. Satisfied by the
// riot client.
type AccountResolver interface {
	AccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	Platform() string
}

type service struct {
	games           repository.Game
	accounts        repository.Account
	resolver        AccountResolver
	eventBus        event.Bus
	maxTrackedGames int
	now             func() time.Time
}

// NewService creates a new registry service
func NewService(games repository.Game, accounts repository.Account, resolver AccountResolver, eventBus event.Bus, maxTrackedGames int) Service {
	return &service{
		games:           games,
		accounts:        accounts,
		resolver:        resolver,
		eventBus:        eventBus,
		maxTrackedGames: maxTrackedGames,
		now:             time.Now,
	}
}

// TrackAccount subscribes a riot account for live-game polling. Returns
// ErrAccountAlreadyTracked when the account is already enabled, and
// re-enables a previously untracked account otherwise.
func (s *service) TrackAccount(ctx context.Context, gameName, tagLine string) (*domain.TrackedAccount, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgTrackAccountCalled, "game_name", gameName, "tag_line", tagLine)

	if gameName == "" || tagLine == "" {
		return nil, fmt.Errorf("%w: riot id requires both name and tag", domain.ErrInvalidInput)
	}

	acct, err := s.resolver.AccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToResolveAccount, err)
	}

	existing, err := s.accounts.GetTrackedAccount(ctx, acct.PUUID)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCheckAccount, err)
	}
	if existing != nil && existing.Enabled {
		return nil, fmt.Errorf("%w: %s#%s", domain.ErrAccountAlreadyTracked, acct.GameName, acct.TagLine)
	}

	tracked := &domain.TrackedAccount{
		PUUID:       acct.PUUID,
		Region:      s.resolver.Platform(),
		GameName:    acct.GameName,
		TagLine:     acct.TagLine,
		DisplayName: acct.GameName + "#" + acct.TagLine,
		Enabled:     true,
		AddedAt:     s.now(),
	}
	if err := s.accounts.UpsertTrackedAccount(ctx, tracked); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToUpsertAccount, err)
	}

	log.Info(LogMsgAccountTracked, "puuid", tracked.PUUID, "display_name", tracked.DisplayName)
	s.publish(ctx, event.NewAccountTrackedEvent(tracked, true))

	return tracked, nil
}

// UntrackAccount stops polling the named account. Matching is
// case-insensitive on the riot id. The account and its history are
// retained.
func (s *service) UntrackAccount(ctx context.Context, gameName, tagLine string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUntrackAccountCalled, "game_name", gameName, "tag_line", tagLine)

	accounts, err := s.accounts.ListEnabledAccounts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListAccounts, err)
	}

	for i := range accounts {
		if strings.EqualFold(accounts[i].GameName, gameName) && strings.EqualFold(accounts[i].TagLine, tagLine) {
			if err := s.accounts.DisableTrackedAccount(ctx, accounts[i].PUUID); err != nil {
				return fmt.Errorf("%s: %w", ErrContextFailedToDisable, err)
			}
			log.Info(LogMsgAccountUntracked, "puuid", accounts[i].PUUID)
			s.publish(ctx, event.NewAccountTrackedEvent(&accounts[i], false))
			return nil
		}
	}

	return fmt.Errorf("%w: %s#%s", domain.ErrAccountNotFound, gameName, tagLine)
}

func (s *service) ListTrackedAccounts(ctx context.Context) ([]domain.TrackedAccount, error) {
	accounts, err := s.accounts.ListEnabledAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListAccounts, err)
	}
	return accounts, nil
}

// RegisterGame enforces the concurrent-tracking cap, then stores the
// game. Detection sweeps may observe the same live game repeatedly, so
// an already-registered id is reported as created=false, not an error.
func (s *service) RegisterGame(ctx context.Context, game *domain.TrackedGame) (bool, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterGameCalled, "game_id", game.GameID, "tracked_name", game.TrackedName)

	count, err := s.games.CountUnresolvedGames(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToCountGames, err)
	}
	if count >= s.maxTrackedGames {
		// The cap does not apply to a game already in the registry.
		if existing, getErr := s.games.GetTrackedGame(ctx, game.GameID); getErr == nil && existing != nil {
			log.Info(LogMsgGameAlreadyTracked, "game_id", game.GameID)
			return false, nil
		}
		log.Warn(LogMsgTrackingCapReached, "game_id", game.GameID, "unresolved", count, "cap", s.maxTrackedGames)
		return false, fmt.Errorf("%w: %d games unresolved", domain.ErrTrackingCapReached, count)
	}

	created, err := s.games.CreateTrackedGame(ctx, game)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToCreateGame, err)
	}
	if !created {
		log.Info(LogMsgGameAlreadyTracked, "game_id", game.GameID)
		return false, nil
	}

	log.Info(LogMsgGameRegistered,
		"game_id", game.GameID,
		"tracked_side", game.TrackedSide,
		"betting_closes_at", game.BettingClosesAt)
	s.publish(ctx, event.NewGameDetectedEvent(game))

	return true, nil
}

func (s *service) GetGame(ctx context.Context, gameID string) (*domain.TrackedGame, error) {
	game, err := s.games.GetTrackedGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetGame, err)
	}
	return game, nil
}

func (s *service) ListUnresolvedGames(ctx context.Context) ([]domain.TrackedGame, error) {
	games, err := s.games.ListUnresolvedGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListGames, err)
	}
	return games, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		logger.Debug(LogMsgEventPublishSkipped, "reason", LogReasonEventBusNil, "event_type", evt.Type)
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.Warn("Failed to publish event", "event_type", evt.Type, "error", err)
	}
}
