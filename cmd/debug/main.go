package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kassalytics/tracker/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	ctx := context.Background()

	dbPool, err := database.NewPool(ctx, connString, 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// Dump tracked accounts
	fmt.Println("--- Tracked Accounts ---")
	rows, err := dbPool.Query(ctx, "SELECT puuid, display_name, region, enabled FROM tracked_accounts ORDER BY added_at")
	if err != nil {
		log.Printf("Failed to query tracked accounts: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var puuid, displayName, region string
			var enabled bool
			if err := rows.Scan(&puuid, &displayName, &region, &enabled); err != nil {
				log.Printf("Failed to scan account: %v", err)
			}
			fmt.Printf("PUUID: %s, Name: %s, Region: %s, Enabled: %v\n", puuid, displayName, region, enabled)
		}
	}

	// Dump unresolved games
	fmt.Println("\n--- Unresolved Games ---")
	rows, err = dbPool.Query(ctx, `
		SELECT game_id, tracked_name, tracked_side, state, betting_closes_at, needs_manual
		FROM tracked_games
		WHERE NOT resolved
		ORDER BY opened_at
	`)
	if err != nil {
		log.Printf("Failed to query games: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var gameID, trackedName, side, state string
			var closesAt time.Time
			var needsManual bool
			if err := rows.Scan(&gameID, &trackedName, &side, &state, &closesAt, &needsManual); err != nil {
				log.Printf("Failed to scan game: %v", err)
			}
			fmt.Printf("Game: %s, Tracked: %s (%s), State: %s, Closes: %v, NeedsManual: %v\n",
				gameID, trackedName, side, state, closesAt, needsManual)
		}
	}

	// Dump wagers joined to their games
	fmt.Println("\n--- Wagers ---")
	query := `
		SELECT w.id, w.bettor_id, w.side, w.stake, w.potential_payout, w.settled, g.game_id
		FROM wagers w
		JOIN tracked_games g ON w.game_id = g.game_id
		ORDER BY w.placed_at DESC
		LIMIT 50
	`
	rows, err = dbPool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query wagers: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, bettorID, side, gameID string
			var stake, payout int64
			var settled bool
			if err := rows.Scan(&id, &bettorID, &side, &stake, &payout, &settled, &gameID); err != nil {
				log.Printf("Failed to scan wager: %v", err)
			}
			fmt.Printf("Wager: %s, Bettor: %s, Side: %s, Stake: %d, Payout: %d, Settled: %v, Game: %s\n",
				id, bettorID, side, stake, payout, settled, gameID)
		}
	}
}
