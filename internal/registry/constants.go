package registry

// Log operation identifiers
const (
	LogMsgTrackAccountCalled   = "TrackAccount called"
	LogMsgUntrackAccountCalled = "UntrackAccount called"
	LogMsgRegisterGameCalled   = "RegisterGame called"
)

// Warning/Info messages
const (
	LogMsgAccountTracked      = "Account tracked"
	LogMsgAccountUntracked    = "Account untracked"
	LogMsgGameRegistered      = "Game registered"
	LogMsgGameAlreadyTracked  = "Game already tracked, skipping registration"
	LogMsgTrackingCapReached  = "Tracking cap reached, game not registered"
	LogMsgEventPublishSkipped = "Event publish skipped"
	LogReasonEventBusNil      = "eventBus is nil"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToResolveAccount = "failed to resolve riot account"
	ErrContextFailedToCheckAccount   = "failed to check tracked account"
	ErrContextFailedToUpsertAccount  = "failed to save tracked account"
	ErrContextFailedToListAccounts   = "failed to list tracked accounts"
	ErrContextFailedToDisable        = "failed to disable tracked account"
	ErrContextFailedToCountGames     = "failed to count unresolved games"
	ErrContextFailedToCreateGame     = "failed to create tracked game"
	ErrContextFailedToGetGame        = "failed to get tracked game"
	ErrContextFailedToListGames      = "failed to list tracked games"
)
