package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kassalytics/tracker/internal/domain"
)

// AccountRepository implements tracked Riot account persistence for PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `puuid, region, game_name, tag_line, display_name, enabled, added_at`

// UpsertTrackedAccount registers an account for polling, re-enabling it
// if it was previously disabled
func (r *AccountRepository) UpsertTrackedAccount(ctx context.Context, account *domain.TrackedAccount) error {
	query := `
		INSERT INTO tracked_accounts (puuid, region, game_name, tag_line, display_name, enabled)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (puuid) DO UPDATE
		SET game_name = EXCLUDED.game_name,
			tag_line = EXCLUDED.tag_line,
			display_name = EXCLUDED.display_name,
			enabled = TRUE
	`
	_, err := r.db.Exec(ctx, query, account.PUUID, account.Region,
		account.GameName, account.TagLine, account.DisplayName)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertAccount, err)
	}
	return nil
}

// GetTrackedAccount retrieves a tracked account by puuid
func (r *AccountRepository) GetTrackedAccount(ctx context.Context, puuid string) (*domain.TrackedAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM tracked_accounts WHERE puuid = $1`

	var acct domain.TrackedAccount
	err := r.db.QueryRow(ctx, query, puuid).Scan(&acct.PUUID, &acct.Region,
		&acct.GameName, &acct.TagLine, &acct.DisplayName, &acct.Enabled, &acct.AddedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, puuid)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}
	return &acct, nil
}

// ListEnabledAccounts returns the accounts the poller sweeps
func (r *AccountRepository) ListEnabledAccounts(ctx context.Context) ([]domain.TrackedAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM tracked_accounts WHERE enabled ORDER BY added_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
	}
	defer rows.Close()

	accounts := []domain.TrackedAccount{}
	for rows.Next() {
		var acct domain.TrackedAccount
		err := rows.Scan(&acct.PUUID, &acct.Region, &acct.GameName,
			&acct.TagLine, &acct.DisplayName, &acct.Enabled, &acct.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAccounts, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// DisableTrackedAccount stops polling without losing history
func (r *AccountRepository) DisableTrackedAccount(ctx context.Context, puuid string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE tracked_accounts SET enabled = FALSE WHERE puuid = $1`, puuid)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDisableAccount, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, puuid)
	}
	return nil
}
