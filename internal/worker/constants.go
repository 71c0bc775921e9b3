package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for window worker operations
const (
	LogMsgSchedulingWindowClose     = "Scheduling betting window close"
	LogMsgExecutingWindowClose      = "Closing scheduled betting window"
	LogMsgFailedToCloseWindow       = "Failed to close betting window"
	LogMsgFailedToListOpenOnStartup = "Failed to list open games on startup"
)

// Log messages for retention worker operations
const (
	LogMsgRetentionStarting  = "Event log retention sweep starting"
	LogMsgRetentionCompleted = "Event log retention sweep completed"
	LogMsgRetentionFailed    = "Event log retention sweep failed"
	LogMsgRetentionScheduled = "Event log retention sweep scheduled"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
