package repository

import (
	"context"

	"github.com/kassalytics/tracker/internal/domain"
)

// Account defines the interface for tracked Riot account persistence
type Account interface {
	// UpsertTrackedAccount registers an account for polling, re-enabling
	// it if it was previously removed.
	UpsertTrackedAccount(ctx context.Context, account *domain.TrackedAccount) error

	GetTrackedAccount(ctx context.Context, puuid string) (*domain.TrackedAccount, error)

	// ListEnabledAccounts returns the accounts the poller sweeps.
	ListEnabledAccounts(ctx context.Context) ([]domain.TrackedAccount, error)

	// DisableTrackedAccount stops polling without losing history.
	DisableTrackedAccount(ctx context.Context, puuid string) error
}
