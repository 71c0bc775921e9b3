package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kassalytics/tracker/internal/database/postgres"
	"github.com/kassalytics/tracker/internal/repository"
)

// Repositories holds all repository implementations used by the engine.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Account  repository.Account
	Game     repository.Game
	Ledger   repository.Ledger
	EventLog repository.EventLog
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Account:  postgres.NewAccountRepository(dbPool),
		Game:     postgres.NewGameRepository(dbPool),
		Ledger:   postgres.NewLedgerRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
