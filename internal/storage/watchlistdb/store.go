// Package watchlistdb implements WatchlistStore using SQLite.
// Watchlist rows are relational with a uniqueness constraint per
// (user_id, symbol), which a KV store cannot enforce directly.
package watchlistdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/interfaces"
	"github.com/portfolai/portfolai/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS watchlist (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	UNIQUE(user_id, symbol)
);
CREATE INDEX IF NOT EXISTS idx_watchlist_user ON watchlist(user_id);
`

// Store implements interfaces.WatchlistStore using SQLite.
type Store struct {
	db     *sql.DB
	logger *common.Logger
}

// NewStore opens (and migrates) a watchlist database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create watchlist db directory: %w", err)
		}
	}

	connStr := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist db at %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate watchlist db: %w", err)
	}

	logger.Info().Str("path", path).Msg("WatchlistDB opened")
	return &Store{db: db, logger: logger}, nil
}

// List returns the user's items ordered newest first.
func (s *Store) List(userID string) ([]models.WatchlistItem, error) {
	rows, err := s.db.Query(
		`SELECT user_id, symbol, created_at FROM watchlist WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist for user '%s': %w", userID, err)
	}
	defer rows.Close()

	var items []models.WatchlistItem
	for rows.Next() {
		var item models.WatchlistItem
		if err := rows.Scan(&item.UserID, &item.Symbol, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read watchlist rows: %w", err)
	}
	return items, nil
}

// Add inserts a (user, symbol) row. Returns false without error when the row
// already exists.
func (s *Store) Add(userID, symbol string) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO watchlist (user_id, symbol, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, symbol) DO NOTHING`,
		userID, symbol, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to add '%s' to watchlist for user '%s': %w", symbol, userID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if n > 0 {
		s.logger.Debug().Str("user_id", userID).Str("symbol", symbol).Msg("Watchlist symbol added")
	}
	return n > 0, nil
}

// Remove deletes a (user, symbol) row. Returns false when no row matched.
func (s *Store) Remove(userID, symbol string) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM watchlist WHERE user_id = ? AND symbol = ?`,
		userID, symbol,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove '%s' from watchlist for user '%s': %w", symbol, userID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	if n > 0 {
		s.logger.Debug().Str("user_id", userID).Str("symbol", symbol).Msg("Watchlist symbol removed")
	}
	return n > 0, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}

// Ensure Store implements WatchlistStore
var _ interfaces.WatchlistStore = (*Store)(nil)
