package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wager is a single bettor's stake on one side of a tracked game.
// Wagers are immutable after placement; resolution only flips Settled.
type Wager struct {
	ID                    uuid.UUID `json:"id"`
	GameID                string    `json:"game_id"`
	BettorID              string    `json:"bettor_id"`
	Side                  Side      `json:"side"`
	Stake                 int64     `json:"stake"`
	MultiplierAtPlacement float64   `json:"multiplier_at_placement"`
	PotentialPayout       int64     `json:"potential_payout"`
	PlacedAt              time.Time `json:"placed_at"`
	Settled               bool      `json:"settled"`
}

// SettlementSummary describes the outcome of resolving all wagers on
// one game.
type SettlementSummary struct {
	GameID        string `json:"game_id"`
	WinningSide   Side   `json:"winning_side"`
	WagersSettled int    `json:"wagers_settled"`
	WinningBets   int    `json:"winning_bets"`
	LosingBets    int    `json:"losing_bets"`
	TotalPaidOut  int64  `json:"total_paid_out"`
	TotalLost     int64  `json:"total_lost"`
}
