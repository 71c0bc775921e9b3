package discord

// Friendly message constants for Discord responses
const (
	// Betting
	MsgBettingClosed     = "⏰ **Betting Closed**\nThe betting window for that game has already closed."
	// Headers only: the engine's error message carries the balance or
	// the side already bet, and is appended as the body.
	MsgInsufficientPts   = "⚠️ **Not Enough Points!**"
	MsgDuplicateBet      = "🎫 **Already In**"
	MsgBelowMinimumStake = "💸 **Stake Too Small**\nYour stake is below the table minimum."
	MsgAlreadyResolved   = "🏁 **Game Over**\nThat game has already been resolved."

	// Lookups
	MsgGameNotFound    = "❓ **Game Not Found**\nMaybe check the game id?"
	MsgAccountNotFound = "👤 **Account Not Found**\nIs that Riot ID correct, and is the account tracked?"

	// Tracking
	MsgAlreadyTracked = "📡 **Already Tracked**\nThat account is already being watched."
	MsgTrackingCap    = "📡 **Tracker Busy**\nToo many games are being tracked right now. Try again soon."

	MsgGenericError = "❌ Something went wrong."
)
