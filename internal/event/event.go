package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kassalytics/tracker/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Engine event types
const (
	GameDetected    Type = "game.detected"
	BettingClosed   Type = "game.betting_closed"
	GameResolved    Type = "game.resolved"
	GameNeedsManual Type = "game.needs_manual"
	BetPlaced       Type = "bet.placed"
	AccountTracked  Type = "account.tracked"
)

// Typed event payloads for type safety

// GameDetectedPayloadV1 announces a newly tracked game with its pricing
type GameDetectedPayloadV1 struct {
	GameID          string    `json:"game_id"`
	TrackedName     string    `json:"tracked_name"`
	TrackedSide     string    `json:"tracked_side"`
	BlueWinPct      float64   `json:"blue_win_pct"`
	RedWinPct       float64   `json:"red_win_pct"`
	BlueMultiplier  float64   `json:"blue_multiplier"`
	RedMultiplier   float64   `json:"red_multiplier"`
	BettingClosesAt time.Time `json:"betting_closes_at"`
}

// BettingClosedPayloadV1 reports that the betting window for a game ended
type BettingClosedPayloadV1 struct {
	GameID      string `json:"game_id"`
	TrackedName string `json:"tracked_name"`
	WagerCount  int    `json:"wager_count"`
	TotalStaked int64  `json:"total_staked"`
}

// GameResolvedPayloadV1 carries the settlement outcome of a game
type GameResolvedPayloadV1 struct {
	GameID        string `json:"game_id"`
	TrackedName   string `json:"tracked_name"`
	WinningSide   string `json:"winning_side"`
	TrackedWon    bool   `json:"tracked_won"`
	WagersSettled int    `json:"wagers_settled"`
	WinningBets   int    `json:"winning_bets"`
	LosingBets    int    `json:"losing_bets"`
	TotalPaidOut  int64  `json:"total_paid_out"`
	TotalLost     int64  `json:"total_lost"`
}

// GameNeedsManualPayloadV1 flags a game whose result never arrived
type GameNeedsManualPayloadV1 struct {
	GameID string `json:"game_id"`
	Reason string `json:"reason"`
}

// BetPlacedPayloadV1 records a new wager
type BetPlacedPayloadV1 struct {
	GameID          string  `json:"game_id"`
	BettorID        string  `json:"bettor_id"`
	Side            string  `json:"side"`
	Stake           int64   `json:"stake"`
	Multiplier      float64 `json:"multiplier"`
	PotentialPayout int64   `json:"potential_payout"`
	Timestamp       int64   `json:"timestamp"`
}

// AccountTrackedPayloadV1 records a tracking subscription change
type AccountTrackedPayloadV1 struct {
	PUUID       string `json:"puuid"`
	DisplayName string `json:"display_name"`
	Enabled     bool   `json:"enabled"`
}

// Type-safe event constructors

// NewGameDetectedEvent creates the announcement event for a new game
func NewGameDetectedEvent(game *domain.TrackedGame) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GameDetected,
		Payload: GameDetectedPayloadV1{
			GameID:          game.GameID,
			TrackedName:     game.TrackedName,
			TrackedSide:     string(game.TrackedSide),
			BlueWinPct:      game.Odds.BlueWinPct,
			RedWinPct:       game.Odds.RedWinPct,
			BlueMultiplier:  game.Odds.BlueMultiplier,
			RedMultiplier:   game.Odds.RedMultiplier,
			BettingClosesAt: game.BettingClosesAt,
		},
	}
}

// NewBettingClosedEvent creates the window-closed event for a game
func NewBettingClosedEvent(game *domain.TrackedGame, wagerCount int, totalStaked int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BettingClosed,
		Payload: BettingClosedPayloadV1{
			GameID:      game.GameID,
			TrackedName: game.TrackedName,
			WagerCount:  wagerCount,
			TotalStaked: totalStaked,
		},
	}
}

// NewGameResolvedEvent creates the settlement event from a summary
func NewGameResolvedEvent(trackedName string, trackedWon bool, summary *domain.SettlementSummary) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GameResolved,
		Payload: GameResolvedPayloadV1{
			GameID:        summary.GameID,
			TrackedName:   trackedName,
			WinningSide:   string(summary.WinningSide),
			TrackedWon:    trackedWon,
			WagersSettled: summary.WagersSettled,
			WinningBets:   summary.WinningBets,
			LosingBets:    summary.LosingBets,
			TotalPaidOut:  summary.TotalPaidOut,
			TotalLost:     summary.TotalLost,
		},
	}
}

// NewGameNeedsManualEvent flags a game for operator review
func NewGameNeedsManualEvent(gameID, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GameNeedsManual,
		Payload: GameNeedsManualPayloadV1{
			GameID: gameID,
			Reason: reason,
		},
	}
}

// NewBetPlacedEvent records a freshly placed wager
func NewBetPlacedEvent(wager *domain.Wager) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BetPlaced,
		Payload: BetPlacedPayloadV1{
			GameID:          wager.GameID,
			BettorID:        wager.BettorID,
			Side:            string(wager.Side),
			Stake:           wager.Stake,
			Multiplier:      wager.MultiplierAtPlacement,
			PotentialPayout: wager.PotentialPayout,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// NewAccountTrackedEvent records a tracking subscription change
func NewAccountTrackedEvent(account *domain.TrackedAccount, enabled bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AccountTracked,
		Payload: AccountTrackedPayloadV1{
			PUUID:       account.PUUID,
			DisplayName: account.DisplayName,
			Enabled:     enabled,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously; slow subscribers belong behind
	// the resilient publisher or a worker.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
