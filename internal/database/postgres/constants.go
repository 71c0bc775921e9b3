package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Tracked Game Operations
const (
	ErrMsgFailedToCreateGame      = "failed to create tracked game"
	ErrMsgFailedToGetGame         = "failed to get tracked game"
	ErrMsgFailedToListGames       = "failed to list tracked games"
	ErrMsgFailedToCountGames      = "failed to count tracked games"
	ErrMsgFailedToUpdateGameState = "failed to update game state"
	ErrMsgFailedToSetNotifyRef    = "failed to set notification ref"
	ErrMsgFailedToFlagManual      = "failed to flag game for manual resolution"
	ErrMsgFailedToRecordResult    = "failed to record game result"
)

// Error Messages - Wager Operations
const (
	ErrMsgFailedToInsertWager  = "failed to insert wager"
	ErrMsgFailedToGetWager     = "failed to get wager"
	ErrMsgFailedToListWagers   = "failed to list wagers"
	ErrMsgFailedToSettleWagers = "failed to mark wagers settled"
)

// Error Messages - Bettor Operations
const (
	ErrMsgFailedToGetBettor     = "failed to get bettor account"
	ErrMsgFailedToCreateBettor  = "failed to create bettor account"
	ErrMsgFailedToUpdateBettor  = "failed to update bettor account"
	ErrMsgFailedToListBettors   = "failed to list bettor accounts"
	ErrMsgFailedToAdjustBalance = "failed to adjust balance"
)

// Error Messages - Tracked Account Operations
const (
	ErrMsgFailedToUpsertAccount  = "failed to upsert tracked account"
	ErrMsgFailedToGetAccount     = "failed to get tracked account"
	ErrMsgFailedToListAccounts   = "failed to list tracked accounts"
	ErrMsgFailedToDisableAccount = "failed to disable tracked account"
)

// Error Messages - Event Operations
const (
	ErrMsgFailedToInsertEvent = "failed to insert event"
	ErrMsgFailedToQueryEvents = "failed to query events"
)

// Error Messages - Conversion Operations
const (
	ErrMsgFailedToConvertNumeric = "failed to convert numeric to float64"
)
