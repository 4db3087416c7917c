package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
	"github.com/lewieville/g1-creative-sub000/internal/shared"
	_ "modernc.org/sqlite"
)

const upsertRetries = 3

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS behavior_profiles (
		visitor_id TEXT PRIMARY KEY,
		profile_json TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_behavior_profiles_updated ON behavior_profiles(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetProfile retrieves the profile for a visitor, treating a corrupt stored
// record as absent so a bad row silently resets to defaults.
func (s *SQLiteStore) GetProfile(ctx context.Context, visitorID string) (*domain.BehaviorProfile, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_json FROM behavior_profiles WHERE visitor_id = ?`,
		visitorID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile row: %w", err)
	}

	var profile domain.BehaviorProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		slog.Warn("Discarding corrupt behavior profile", "visitor_id", visitorID, "error", err)
		return nil, nil
	}
	return &profile, nil
}

// UpsertProfile creates or replaces the profile for a visitor. Writes retry
// briefly on SQLite concurrency conflicts; the tick loop writes every second,
// so a dropped write only loses one increment.
func (s *SQLiteStore) UpsertProfile(ctx context.Context, visitorID string, profile *domain.BehaviorProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	now := time.Now().Unix()
	query := `
		INSERT INTO behavior_profiles (visitor_id, profile_json, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(visitor_id) DO UPDATE SET
			profile_json = excluded.profile_json,
			updated_at = excluded.updated_at`

	var lastErr error
	for attempt := 0; attempt < upsertRetries; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, visitorID, string(raw), now, now)
		if lastErr == nil {
			return nil
		}
		if !shared.IsSQLiteConflictError(lastErr) {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	return fmt.Errorf("upsert profile: %w", lastErr)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
