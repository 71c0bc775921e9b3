package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kassalytics/tracker/internal/repository"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) repository.EventLog {
	return &eventLogRepository{db: db}
}

// LogEvent stores an engine event in the journal
func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, gameID *string, payload, metadata map[string]interface{}) error {
	query := `
		INSERT INTO engine_events (event_type, game_id, payload, metadata)
		VALUES ($1, $2, $3, $4)
	`

	payloadJSON, err := marshalJSONB(payload, "payload")
	if err != nil {
		return err
	}

	var metadataJSON []byte
	if metadata != nil {
		metadataJSON, err = marshalJSONB(metadata, "metadata")
		if err != nil {
			return err
		}
	}

	if _, err := r.db.Exec(ctx, query, eventType, gameID, payloadJSON, metadataJSON); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertEvent, err)
	}
	return nil
}

// GetEvents retrieves events based on filter criteria
func (r *eventLogRepository) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, event_type, game_id, payload, metadata, created_at
		FROM engine_events
		WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.GameID != nil {
		fmt.Fprintf(&queryBuilder, " AND game_id = $%d", argNum)
		args = append(args, *filter.GameID)
		argNum++
	}

	if filter.EventType != nil {
		fmt.Fprintf(&queryBuilder, " AND event_type = $%d", argNum)
		args = append(args, *filter.EventType)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	if filter.Until != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// GetEventsByGame retrieves events for a specific tracked game
func (r *eventLogRepository) GetEventsByGame(ctx context.Context, gameID string, limit int) ([]repository.EventLogEntry, error) {
	query := `
		SELECT id, event_type, game_id, payload, metadata, created_at
		FROM engine_events
		WHERE game_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// CleanupOldEvents removes events older than the specified number of days
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM engine_events
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`

	result, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

// scanEvents scans rows into EventLogEntry structs
func (r *eventLogRepository) scanEvents(rows pgx.Rows) ([]repository.EventLogEntry, error) {
	var events []repository.EventLogEntry

	for rows.Next() {
		var evt repository.EventLogEntry
		var payloadJSON, metadataJSON []byte

		err := rows.Scan(
			&evt.ID,
			&evt.EventType,
			&evt.GameID,
			&payloadJSON,
			&metadataJSON,
			&evt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := unmarshalJSONB(payloadJSON, &evt.Payload, "payload"); err != nil {
			return nil, err
		}
		if err := unmarshalJSONB(metadataJSON, &evt.Metadata, "metadata"); err != nil {
			return nil, err
		}

		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
