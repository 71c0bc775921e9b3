package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kassalytics/tracker/internal/domain"
)

// GameRepository implements the tracked-game repository for PostgreSQL
type GameRepository struct {
	db *pgxpool.Pool
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `game_id, region, state, tracked_puuid, tracked_name, tracked_side,
	participants, odds, opened_at, betting_closes_at, resolved, winning_side,
	needs_manual, notification_ref`

// CreateTrackedGame inserts a new tracked game. Returns false when the
// game id already exists, so repeated detection sweeps are idempotent.
func (r *GameRepository) CreateTrackedGame(ctx context.Context, game *domain.TrackedGame) (bool, error) {
	participants, err := marshalJSONB(game.Participants, "participants")
	if err != nil {
		return false, err
	}
	odds, err := marshalJSONB(game.Odds, "odds")
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO tracked_games (` + gameColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.Exec(ctx, query,
		game.GameID, game.Region, string(game.State), game.TrackedPUUID,
		game.TrackedName, string(game.TrackedSide), participants, odds,
		game.OpenedAt, game.BettingClosesAt, game.Resolved,
		sideToText(game.WinningSide), game.NeedsManual, game.NotificationRef,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCreateGame, err)
	}
	return true, nil
}

// GetTrackedGame retrieves a tracked game by its match id
func (r *GameRepository) GetTrackedGame(ctx context.Context, gameID string) (*domain.TrackedGame, error) {
	query := `SELECT ` + gameColumns + ` FROM tracked_games WHERE game_id = $1`

	game, err := scanGame(r.db.QueryRow(ctx, query, gameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetGame, err)
	}
	return game, nil
}

// ListUnresolvedGames returns every game that has not been resolved, oldest first
func (r *GameRepository) ListUnresolvedGames(ctx context.Context) ([]domain.TrackedGame, error) {
	query := `SELECT ` + gameColumns + ` FROM tracked_games WHERE NOT resolved ORDER BY opened_at`
	return r.queryGames(ctx, query)
}

// CountUnresolvedGames supports the concurrent-tracking cap
func (r *GameRepository) CountUnresolvedGames(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tracked_games WHERE NOT resolved`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountGames, err)
	}
	return count, nil
}

// ListGamesInState returns unresolved games currently in the given state
func (r *GameRepository) ListGamesInState(ctx context.Context, state domain.GameState) ([]domain.TrackedGame, error) {
	query := `SELECT ` + gameColumns + ` FROM tracked_games
		WHERE NOT resolved AND state = $1 ORDER BY opened_at`
	return r.queryGames(ctx, query, string(state))
}

// UpdateGameState updates the lifecycle state of a game
func (r *GameRepository) UpdateGameState(ctx context.Context, gameID string, state domain.GameState) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tracked_games SET state = $1 WHERE game_id = $2`,
		string(state), gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateGameState, err)
	}
	return nil
}

// UpdateGameStateIfMatches performs a compare-and-swap on game state.
// Returns the number of rows affected (0 if state didn't match, 1 if updated),
// which prevents concurrent sweeps from double-firing a transition.
func (r *GameRepository) UpdateGameStateIfMatches(ctx context.Context, gameID string, expectedState, newState domain.GameState) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE tracked_games SET state = $1 WHERE game_id = $2 AND state = $3`,
		string(newState), gameID, string(expectedState))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateGameState, err)
	}
	return result.RowsAffected(), nil
}

// SetNotificationRef records the announcement message id for the game
func (r *GameRepository) SetNotificationRef(ctx context.Context, gameID, ref string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tracked_games SET notification_ref = $1 WHERE game_id = $2`,
		ref, gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetNotifyRef, err)
	}
	return nil
}

// MarkNeedsManual flags a game whose result could not be fetched in time
func (r *GameRepository) MarkNeedsManual(ctx context.Context, gameID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tracked_games SET needs_manual = TRUE WHERE game_id = $1`,
		gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToFlagManual, err)
	}
	return nil
}

func (r *GameRepository) queryGames(ctx context.Context, query string, args ...any) ([]domain.TrackedGame, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGames, err)
	}
	defer rows.Close()

	games := []domain.TrackedGame{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGames, err)
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

// scanGame maps one tracked_games row into the domain type
func scanGame(row pgx.Row) (*domain.TrackedGame, error) {
	var (
		game         domain.TrackedGame
		state, side  string
		participants []byte
		odds         []byte
		winningSide  pgtype.Text
	)

	err := row.Scan(&game.GameID, &game.Region, &state, &game.TrackedPUUID,
		&game.TrackedName, &side, &participants, &odds, &game.OpenedAt,
		&game.BettingClosesAt, &game.Resolved, &winningSide,
		&game.NeedsManual, &game.NotificationRef)
	if err != nil {
		return nil, err
	}

	game.State = domain.GameState(state)
	game.TrackedSide = domain.Side(side)
	game.WinningSide = textToSide(winningSide)

	if err := unmarshalJSONB(participants, &game.Participants, "participants"); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(odds, &game.Odds, "odds"); err != nil {
		return nil, err
	}
	return &game, nil
}
