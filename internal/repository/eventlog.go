package repository

import (
	"context"
	"time"
)

// EventLog defines the interface for engine event logging storage.
// Every lifecycle transition, wager and settlement is journaled here
// for audit and manual-resolution review.
type EventLog interface {
	// LogEvent stores an event in the database
	LogEvent(ctx context.Context, eventType string, gameID *string, payload, metadata map[string]interface{}) error

	// GetEvents retrieves events based on filter criteria
	GetEvents(ctx context.Context, filter EventLogFilter) ([]EventLogEntry, error)

	// GetEventsByGame retrieves events for a specific tracked game
	GetEventsByGame(ctx context.Context, gameID string, limit int) ([]EventLogEntry, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

// EventLogEntry represents a logged engine event
type EventLogEntry struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	GameID    *string                `json:"game_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventLogFilter filters events for queries
type EventLogFilter struct {
	GameID    *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}
