package eventlog

// JSON payload field keys
const (
	PayloadKeyGameID = "game_id"
)

// Log messages - service events
const (
	LogMsgEventPayloadNotEncodable = "Event payload could not be encoded, skipping log"
	LogMsgFailedToLogEvent         = "Failed to log event to database"
	LogMsgEventLogged              = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
