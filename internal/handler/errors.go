package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Betting operation error messages
	ErrMsgPlaceBetFailed     = "Failed to place bet"
	ErrMsgGetBalanceFailed   = "Failed to get balance"
	ErrMsgLeaderboardFailed  = "Failed to retrieve leaderboard"
	ErrMsgWagerHistoryFailed = "Failed to retrieve wager history"
	ErrMsgListWagersFailed   = "Failed to list wagers"

	// Game operation error messages
	ErrMsgListGamesFailed  = "Failed to list games"
	ErrMsgGetGameFailed    = "Failed to get game"
	ErrMsgGameNotFoundHTTP = "Game not found"

	// Account operation error messages
	ErrMsgTrackAccountFailed   = "Failed to track account"
	ErrMsgUntrackAccountFailed = "Failed to untrack account"
	ErrMsgListAccountsFailed   = "Failed to list tracked accounts"

	// Admin operation error messages
	ErrMsgResolveFailed   = "Failed to resolve game"
	ErrMsgAdjustFailed    = "Failed to adjust balance"
	ErrMsgGetEventsFailed = "Failed to retrieve events"
	ErrMsgDeltaRequired   = "delta must be non-zero"

	// Parameter validation error messages
	ErrMsgInvalidLimit = "Invalid limit parameter"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgAccountTrackedSuccess   = "Account tracked successfully"
	MsgAccountUntrackedSuccess = "Account untracked successfully"
)
