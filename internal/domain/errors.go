package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Betting errors
	ErrMsgBettingClosed       = "betting window is closed"
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgDuplicateBet        = "bet already placed on this game"
	ErrMsgBelowMinimumStake   = "stake below minimum"
	ErrMsgAlreadyResolved     = "game already resolved"
	ErrMsgInvalidSide         = "invalid side"

	// Lookup errors
	ErrMsgGameNotFound    = "game not found"
	ErrMsgAccountNotFound = "account not found"

	// Provider errors
	ErrMsgUpstreamUnavailable = "match data provider unavailable"

	// Tracking errors
	ErrMsgAccountAlreadyTracked = "account is already tracked"
	ErrMsgTrackingCapReached    = "tracked game limit reached"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Transaction errors (partial match against driver errors)
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: details", domain.ErrXxx) for context.
var (
	// Betting ledger errors
	ErrBettingClosed       = errors.New(ErrMsgBettingClosed)
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrDuplicateBet        = errors.New(ErrMsgDuplicateBet)
	ErrBelowMinimumStake   = errors.New(ErrMsgBelowMinimumStake)
	ErrAlreadyResolved     = errors.New(ErrMsgAlreadyResolved)
	ErrInvalidSide         = errors.New(ErrMsgInvalidSide)

	// Lookup errors
	ErrGameNotFound    = errors.New(ErrMsgGameNotFound)
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)

	// Upstream errors: retryable, never a definitive "not in game" or
	// "lost" signal
	ErrUpstreamUnavailable = errors.New(ErrMsgUpstreamUnavailable)

	// Tracking errors
	ErrAccountAlreadyTracked = errors.New(ErrMsgAccountAlreadyTracked)
	ErrTrackingCapReached    = errors.New(ErrMsgTrackingCapReached)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// InsufficientBalanceError rejects a stake the bettor cannot cover. It
// carries the current balance so user-facing surfaces can report it.
// Matches ErrInsufficientBalance under errors.Is.
type InsufficientBalanceError struct {
	Balance int64
	Stake   int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: balance %d, stake %d", ErrMsgInsufficientBalance, e.Balance, e.Stake)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// DuplicateBetError rejects a second wager on the same game. It carries
// the side of the existing wager so user-facing surfaces can report it.
// Matches ErrDuplicateBet under errors.Is.
type DuplicateBetError struct {
	ExistingSide Side
}

func (e *DuplicateBetError) Error() string {
	return fmt.Sprintf("%s: existing bet is on %s", ErrMsgDuplicateBet, e.ExistingSide)
}

func (e *DuplicateBetError) Unwrap() error { return ErrDuplicateBet }
