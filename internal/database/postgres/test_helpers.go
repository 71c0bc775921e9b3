package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	testPool          *pgxpool.Pool
	testPoolOnce      sync.Once
	migrationsApplied bool
	migrationsMux     sync.Mutex
)

// setupTestDB returns a pool against the database named by
// TEST_DATABASE_URL, skipping the test when the variable is unset.
// Migrations are applied once per package run.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	testPoolOnce.Do(func() {
		pool, err := pgxpool.New(context.Background(), connString)
		if err != nil {
			t.Fatalf("failed to connect to test database: %v", err)
		}
		testPool = pool
	})

	ensureMigrations(t)
	return testPool
}

// ensureMigrations applies migrations once for all tests in the package
func ensureMigrations(t *testing.T) {
	migrationsMux.Lock()
	defer migrationsMux.Unlock()

	if migrationsApplied {
		return
	}

	ctx := context.Background()

	// Schema may already exist from a previous run against the same
	// database.
	var existing *string
	if err := testPool.QueryRow(ctx, `SELECT to_regclass('tracked_games')::text`).Scan(&existing); err == nil && existing != nil {
		migrationsApplied = true
		return
	}

	if err := applyMigrations(ctx, t, testPool, "../../../migrations"); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	migrationsApplied = true
}

// applyMigrations runs all migration files in order, stripping goose
// markers so the files can be executed directly.
func applyMigrations(ctx context.Context, t *testing.T, pool *pgxpool.Pool, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var migrationFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			migrationFiles = append(migrationFiles, filepath.Join(migrationsDir, entry.Name()))
		}
	}
	sort.Strings(migrationFiles)

	for _, file := range migrationFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		contentStr := string(content)
		contentStr = strings.Replace(contentStr, "-- +goose Up", "", 1)
		if downIdx := strings.Index(contentStr, "-- +goose Down"); downIdx != -1 {
			contentStr = contentStr[:downIdx]
		}
		contentStr = strings.TrimSpace(contentStr)

		t.Logf("Executing: %s", filepath.Base(file))
		if _, err := pool.Exec(ctx, contentStr); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// truncateTables clears the tracking tables between tests
func truncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE engine_events, wagers, bettor_accounts, tracked_games, tracked_accounts CASCADE`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
