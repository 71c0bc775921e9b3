package tracker

// Reasons recorded when a game is flagged for manual resolution
const (
	ManualReasonResultDeadline = "result not available before deadline"
)

// Log operation identifiers
const (
	LogMsgPollSweepStarted    = "Poll sweep started"
	LogMsgWindowSweepStarted  = "Window sweep started"
	LogMsgResultSweepStarted  = "Result sweep started"
	LogMsgGameDetected        = "Live game detected"
	LogMsgGameSkippedQueue    = "Live game skipped, not ranked solo queue"
	LogMsgBettingWindowClosed = "Betting window closed"
	LogMsgGameLeftSpectator   = "Game no longer live, awaiting result"
	LogMsgGameResolvedByPoll  = "Game resolved from match history"
	LogMsgGameFlaggedManual   = "Game flagged for manual resolution"
	LogMsgResultNotReady      = "Match result not in history yet"
	LogMsgProviderUnavailable = "Match provider unavailable, will retry"
	LogMsgNotifyFailed        = "Notification failed"
	LogMsgAccountPollFailed   = "Account poll failed"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToListAccounts = "failed to list tracked accounts"
	ErrContextFailedToListGames    = "failed to list games"
	ErrContextFailedToEnrichRoster = "failed to enrich roster"
	ErrContextFailedToRegisterGame = "failed to register game"
	ErrContextFailedToCloseWindow  = "failed to close betting window"
	ErrContextFailedToResolveGame  = "failed to resolve game"
)
