// Package sqlite provides a SQLite-backed raw payload cache.
//
// The cache stores fetched character payloads only, never computed models:
// results are cheap to recompute and caching them would hide rule-table
// changes between runs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/sheetwright/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/sheetwright/internal/platform/storage/sqlitemigrate"

	"github.com/louisbranch/sheetwright/internal/beyond/cache/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists raw character payloads in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite payload cache and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("cache path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the cached payload for a character, or a not-found error.
func (s *Store) Get(ctx context.Context, characterID string) ([]byte, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, time.Time{}, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, time.Time{}, fmt.Errorf("cache is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, time.Time{}, fmt.Errorf("character id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT payload, fetched_at FROM raw_payloads WHERE character_id = ?`,
		characterID,
	)

	var payload []byte
	var fetchedAt int64
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, apperrors.WithMetadata(apperrors.CodeNotFound,
				fmt.Sprintf("character %s is not cached", characterID),
				map[string]string{"CharacterID": characterID})
		}
		return nil, time.Time{}, fmt.Errorf("get cached payload: %w", err)
	}
	return payload, fromMillis(fetchedAt), nil
}

// Put stores or replaces the cached payload for a character.
func (s *Store) Put(ctx context.Context, characterID string, payload []byte, fetchedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("cache is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return fmt.Errorf("character id is required")
	}
	if len(payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO raw_payloads (character_id, payload, fetched_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(character_id) DO UPDATE SET
		   payload = excluded.payload,
		   fetched_at = excluded.fetched_at`,
		characterID,
		payload,
		toMillis(fetchedAt),
	)
	if err != nil {
		return fmt.Errorf("put cached payload: %w", err)
	}
	return nil
}

// Purge removes cached payloads fetched before the cutoff and reports how
// many rows were deleted.
func (s *Store) Purge(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("cache is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM raw_payloads WHERE fetched_at < ?`,
		toMillis(before),
	)
	if err != nil {
		return 0, fmt.Errorf("purge cached payloads: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge cached payloads: %w", err)
	}
	return deleted, nil
}
