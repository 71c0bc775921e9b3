package repository

import (
	"context"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/logger"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction, meant for deferred cleanup
// after BeginTx. Rolling back a committed transaction reports the
// closed-tx error, which is expected and not logged.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || err.Error() == domain.ErrMsgTxClosed {
		return
	}
	logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
}
