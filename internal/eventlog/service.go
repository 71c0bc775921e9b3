package eventlog

import (
	"context"
	"encoding/json"

	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/logger"
	"github.com/kassalytics/tracker/internal/repository"
)

// Service journals engine events to the database
type Service interface {
	// Subscribe registers the event logger on every engine event type
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.EventLog
}

// NewService creates a new event logging service
func NewService(repo repository.EventLog) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all engine event types
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		event.GameDetected,
		event.BettingClosed,
		event.GameResolved,
		event.GameNeedsManual,
		event.BetPlaced,
		event.AccountTracked,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent persists one event row. Typed payloads go through a JSON
// round trip so the journal stores plain documents regardless of the
// publisher's struct type.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, ok := payloadAsMap(evt.Payload)
	if !ok {
		log.Debug(LogMsgEventPayloadNotEncodable, "type", evt.Type)
		return nil
	}

	var gameID *string
	if id, ok := payload[PayloadKeyGameID].(string); ok && id != "" {
		gameID = &id
	}

	var metadata map[string]interface{}
	if m, ok := evt.Metadata.(map[string]interface{}); ok {
		metadata = m
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), gameID, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "game_id", gameID)
	return nil
}

// payloadAsMap converts any JSON-encodable payload into a map
func payloadAsMap(payload interface{}) (map[string]interface{}, bool) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, true
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return m, true
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
