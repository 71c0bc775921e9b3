package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// ---- Common Helper Functions ----

// textToPtr converts a pgtype.Text to *string, nil when NULL.
func textToPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// sideToText converts an optional side to its column value.
func sideToText(s *domain.Side) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: string(*s), Valid: true}
}

// textToSide converts a nullable side column back to *domain.Side.
func textToSide(t pgtype.Text) *domain.Side {
	if !t.Valid || t.String == "" {
		return nil
	}
	side := domain.Side(t.String)
	return &side
}

// numericToFloat64 safely converts pgtype.Numeric to float64.
func numericToFloat64(n pgtype.Numeric) (float64, error) {
	val, err := n.Float64Value()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToConvertNumeric, err)
	}
	return val.Float64, nil
}

// marshalJSONB marshals a value for a jsonb column with a consistent error.
func marshalJSONB(v any, what string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	return data, nil
}

// unmarshalJSONB unmarshals a jsonb column with a consistent error.
func unmarshalJSONB(data []byte, v any, what string) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", what, err)
	}
	return nil
}
