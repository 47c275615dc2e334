// Package sessiondb implements SessionStore using BadgerHold.
// Sessions are keyed by user ID; reads of absent sessions return a fresh
// empty session rather than an error.
package sessiondb

import (
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/interfaces"
	"github.com/portfolai/portfolai/internal/models"
)

// Store implements interfaces.SessionStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new SessionStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("SessionDB opened")
	return &Store{db: db, logger: logger}, nil
}

// GetSession returns the user's session, creating an empty one if absent.
func (s *Store) GetSession(userID string) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := s.db.Get(userID, &session); err != nil {
		if err == badgerhold.ErrNotFound {
			return &models.ChatSession{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get session for user '%s': %w", userID, err)
	}
	return &session, nil
}

// SaveSession upserts the user's session.
func (s *Store) SaveSession(session *models.ChatSession) error {
	session.UpdatedAt = time.Now()
	if err := s.db.Upsert(session.UserID, session); err != nil {
		return fmt.Errorf("failed to save session for user '%s': %w", session.UserID, err)
	}
	s.logger.Debug().Str("user_id", session.UserID).Int("history", len(session.History)).Msg("Session saved")
	return nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements SessionStore
var _ interfaces.SessionStore = (*Store)(nil)
