package betting

// Log operation identifiers
const (
	LogMsgPlaceBetCalled    = "PlaceBet called"
	LogMsgResolveCalled     = "Resolve called"
	LogMsgAdminAdjustCalled = "AdminAdjust called"
)

// Warning/Info messages
const (
	LogMsgBetPlaced           = "Bet placed"
	LogMsgGameResolved        = "Game resolved"
	LogMsgResolveLostRace     = "Game already claimed by another resolver"
	LogMsgBalanceAdjusted     = "Balance adjusted"
	LogMsgEventPublishSkipped = "Event publish skipped"
	LogReasonEventBusNil      = "eventBus is nil"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToGetGame       = "failed to get tracked game"
	ErrContextFailedToEnsureBettor  = "failed to ensure bettor account"
	ErrContextFailedToBeginTx       = "failed to begin ledger transaction"
	ErrContextFailedToLockBettor    = "failed to lock bettor account"
	ErrContextFailedToInsertWager   = "failed to insert wager"
	ErrContextFailedToUpdateBettor  = "failed to update bettor account"
	ErrContextFailedToCommitTx      = "failed to commit ledger transaction"
	ErrContextFailedToClaimGame     = "failed to claim game for settlement"
	ErrContextFailedToListWagers    = "failed to list wagers"
	ErrContextFailedToSettleWagers  = "failed to mark wagers settled"
	ErrContextFailedToRecordResult  = "failed to record game result"
	ErrContextFailedToGetBettor     = "failed to get bettor account"
	ErrContextFailedToAdjustBalance = "failed to adjust balance"
)
