package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/repository"
)

func insertFixtures(t *testing.T, games *GameRepository, accounts *AccountRepository) *domain.TrackedGame {
	t.Helper()
	ctx := context.Background()

	account := &domain.TrackedAccount{
		PUUID:       "puuid-tracked",
		Region:      "euw1",
		GameName:    "Kassa",
		TagLine:     "EUW",
		DisplayName: "Kassa",
	}
	require.NoError(t, accounts.UpsertTrackedAccount(ctx, account))

	game := &domain.TrackedGame{
		GameID:       "EUW1_100",
		Region:       "euw1",
		State:        domain.GameStateBettingOpen,
		TrackedPUUID: "puuid-tracked",
		TrackedName:  "Kassa",
		TrackedSide:  domain.SideBlue,
		Participants: domain.Rosters{
			Blue: []domain.ParticipantSnapshot{{ChampionID: 145, DisplayName: "Kassa", RankTier: "GOLD", RankDivision: "II"}},
			Red:  []domain.ParticipantSnapshot{{ChampionID: 64, DisplayName: "Rival"}},
		},
		Odds:            domain.Odds{BlueWinPct: 60, RedWinPct: 40, BlueMultiplier: 1.6667, RedMultiplier: 2.5},
		OpenedAt:        time.Now().UTC().Truncate(time.Millisecond),
		BettingClosesAt: time.Now().UTC().Add(3 * time.Minute).Truncate(time.Millisecond),
	}

	created, err := games.CreateTrackedGame(ctx, game)
	require.NoError(t, err)
	require.True(t, created)
	return game
}

func TestGameRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	truncateTables(t, pool)
	ctx := context.Background()

	games := NewGameRepository(pool)
	accounts := NewAccountRepository(pool)
	game := insertFixtures(t, games, accounts)

	t.Run("create is idempotent on game id", func(t *testing.T) {
		created, err := games.CreateTrackedGame(ctx, game)
		require.NoError(t, err)
		assert.False(t, created, "second insert of the same game must be a no-op")
	})

	t.Run("round trips participants and odds", func(t *testing.T) {
		got, err := games.GetTrackedGame(ctx, game.GameID)
		require.NoError(t, err)
		assert.Equal(t, game.TrackedSide, got.TrackedSide)
		assert.Equal(t, game.Odds, got.Odds)
		require.Len(t, got.Participants.Blue, 1)
		assert.Equal(t, "GOLD", got.Participants.Blue[0].RankTier)
	})

	t.Run("unknown game id", func(t *testing.T) {
		_, err := games.GetTrackedGame(ctx, "EUW1_does_not_exist")
		assert.ErrorIs(t, err, domain.ErrGameNotFound)
	})

	t.Run("state CAS fires exactly once", func(t *testing.T) {
		n, err := games.UpdateGameStateIfMatches(ctx, game.GameID, domain.GameStateBettingOpen, domain.GameStateBettingClosed)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = games.UpdateGameStateIfMatches(ctx, game.GameID, domain.GameStateBettingOpen, domain.GameStateBettingClosed)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n, "CAS with stale expected state must not fire")
	})

	t.Run("counts and state listing", func(t *testing.T) {
		count, err := games.CountUnresolvedGames(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		inState, err := games.ListGamesInState(ctx, domain.GameStateBettingClosed)
		require.NoError(t, err)
		assert.Len(t, inState, 1)
	})

	t.Run("needs manual flag", func(t *testing.T) {
		require.NoError(t, games.MarkNeedsManual(ctx, game.GameID))
		got, err := games.GetTrackedGame(ctx, game.GameID)
		require.NoError(t, err)
		assert.True(t, got.NeedsManual)
	})
}

func TestLedgerRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	truncateTables(t, pool)
	ctx := context.Background()

	games := NewGameRepository(pool)
	accounts := NewAccountRepository(pool)
	ledger := NewLedgerRepository(pool)
	game := insertFixtures(t, games, accounts)

	t.Run("ensure bettor creates with starting balance once", func(t *testing.T) {
		acct, err := ledger.EnsureBettor(ctx, "bettor-1", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), acct.Balance)

		// Mutate the balance, then ensure again: must not reset
		_, err = ledger.AdjustBalance(ctx, "bettor-1", -400)
		require.NoError(t, err)

		acct, err = ledger.EnsureBettor(ctx, "bettor-1", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(600), acct.Balance)
	})

	t.Run("debit and wager insert are atomic", func(t *testing.T) {
		tx, err := ledger.BeginTx(ctx)
		require.NoError(t, err)

		acct, err := tx.GetBettorForUpdate(ctx, "bettor-1")
		require.NoError(t, err)

		acct.Balance -= 100
		acct.TotalWagered += 100
		acct.BetsPlaced++
		require.NoError(t, tx.UpdateBettor(ctx, acct))

		wager := &domain.Wager{
			ID:                    uuid.New(),
			GameID:                game.GameID,
			BettorID:              "bettor-1",
			Side:                  domain.SideBlue,
			Stake:                 100,
			MultiplierAtPlacement: 1.6667,
			PotentialPayout:       166,
			PlacedAt:              time.Now().UTC(),
		}
		require.NoError(t, tx.InsertWager(ctx, wager))
		require.NoError(t, tx.Commit(ctx))

		got, err := ledger.GetBettor(ctx, "bettor-1")
		require.NoError(t, err)
		assert.Equal(t, int64(500), got.Balance)
		assert.Equal(t, 1, got.BetsPlaced)
	})

	t.Run("second wager on the same game is a duplicate", func(t *testing.T) {
		tx, err := ledger.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = tx.InsertWager(ctx, &domain.Wager{
			ID:       uuid.New(),
			GameID:   game.GameID,
			BettorID: "bettor-1",
			Side:     domain.SideRed,
			Stake:    100,
			PlacedAt: time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateBet)
	})

	t.Run("settlement claims game and settles wagers atomically", func(t *testing.T) {
		tx, err := ledger.BeginTx(ctx)
		require.NoError(t, err)

		n, err := tx.UpdateGameStateIfMatches(ctx, game.GameID, domain.GameStateBettingOpen, domain.GameStateResolved)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		wagers, err := tx.ListWagersByGameForUpdate(ctx, game.GameID)
		require.NoError(t, err)
		require.Len(t, wagers, 1)

		require.NoError(t, tx.MarkWagersSettled(ctx, game.GameID))
		require.NoError(t, tx.RecordGameResult(ctx, game.GameID, domain.SideBlue))
		require.NoError(t, tx.Commit(ctx))

		got, err := games.GetTrackedGame(ctx, game.GameID)
		require.NoError(t, err)
		assert.True(t, got.Resolved)
		require.NotNil(t, got.WinningSide)
		assert.Equal(t, domain.SideBlue, *got.WinningSide)

		remaining, err := ledger.ListWagersByGame(ctx, game.GameID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.True(t, remaining[0].Settled)
	})

	t.Run("adjust balance floors at zero", func(t *testing.T) {
		acct, err := ledger.AdjustBalance(ctx, "bettor-1", -1_000_000)
		require.NoError(t, err)
		assert.Equal(t, int64(0), acct.Balance)
	})

	t.Run("adjust balance on unknown account", func(t *testing.T) {
		_, err := ledger.AdjustBalance(ctx, "bettor-ghost", 100)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("leaderboard orders by balance", func(t *testing.T) {
		_, err := ledger.EnsureBettor(ctx, "bettor-2", 1000)
		require.NoError(t, err)

		top, err := ledger.ListTopBettors(ctx, 10)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "bettor-2", top[0].BettorID)
	})
}

func TestAccountRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	truncateTables(t, pool)
	ctx := context.Background()

	accounts := NewAccountRepository(pool)

	account := &domain.TrackedAccount{
		PUUID:       "puuid-a",
		Region:      "euw1",
		GameName:    "Player",
		TagLine:     "ONE",
		DisplayName: "Player One",
	}
	require.NoError(t, accounts.UpsertTrackedAccount(ctx, account))

	t.Run("disable removes from sweep list", func(t *testing.T) {
		enabled, err := accounts.ListEnabledAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, enabled, 1)

		require.NoError(t, accounts.DisableTrackedAccount(ctx, "puuid-a"))

		enabled, err = accounts.ListEnabledAccounts(ctx)
		require.NoError(t, err)
		assert.Empty(t, enabled)
	})

	t.Run("upsert re-enables", func(t *testing.T) {
		require.NoError(t, accounts.UpsertTrackedAccount(ctx, account))
		got, err := accounts.GetTrackedAccount(ctx, "puuid-a")
		require.NoError(t, err)
		assert.True(t, got.Enabled)
	})

	t.Run("disable unknown account", func(t *testing.T) {
		err := accounts.DisableTrackedAccount(ctx, "puuid-ghost")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestEventLogRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	truncateTables(t, pool)
	ctx := context.Background()

	events := NewEventLogRepository(pool)

	gameID := "EUW1_200"
	require.NoError(t, events.LogEvent(ctx, "game_detected", &gameID,
		map[string]interface{}{"queue": 420}, nil))
	require.NoError(t, events.LogEvent(ctx, "bet_placed", &gameID,
		map[string]interface{}{"stake": 100}, map[string]interface{}{"request_id": "req-1"}))

	t.Run("by game", func(t *testing.T) {
		got, err := events.GetEventsByGame(ctx, gameID, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		// Newest first
		assert.Equal(t, "bet_placed", got[0].EventType)
		assert.Equal(t, float64(100), got[0].Payload["stake"])
		assert.Equal(t, "req-1", got[0].Metadata["request_id"])
	})

	t.Run("filtered by type", func(t *testing.T) {
		eventType := "game_detected"
		got, err := events.GetEvents(ctx, repository.EventLogFilter{EventType: &eventType, Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, float64(420), got[0].Payload["queue"])
	})
}
