package metrics

import (
	"context"

	"github.com/kassalytics/tracker/internal/event"
	"github.com/kassalytics/tracker/internal/logger"
)

// EventMetricsCollector subscribes to engine events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.GameDetected,
		event.BettingClosed,
		event.GameResolved,
		event.GameNeedsManual,
		event.BetPlaced,
		event.AccountTracked,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.GameDetected:
		GamesDetected.Inc()

	case event.GameResolved:
		payload, err := event.DecodePayload[event.GameResolvedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type)
			return nil
		}
		GamesResolved.WithLabelValues(payload.WinningSide).Inc()
		PayoutsPaid.Add(float64(payload.TotalPaidOut))
		StakeLost.Add(float64(payload.TotalLost))

	case event.GameNeedsManual:
		GamesNeedsManual.Inc()

	case event.BetPlaced:
		payload, err := event.DecodePayload[event.BetPlacedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type)
			return nil
		}
		BetsPlaced.WithLabelValues(payload.Side).Inc()
		StakeWagered.Add(float64(payload.Stake))

	case event.AccountTracked:
		AccountsTracked.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
