// Package userdb implements UserStore using BadgerHold.
package userdb

import (
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/interfaces"
	"github.com/portfolai/portfolai/internal/models"
)

// Store implements interfaces.UserStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new UserStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create user db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open user db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("UserDB opened")
	return &Store{db: db, logger: logger}, nil
}

// CreateUser stores a new account. Returns ErrUserExists on duplicate username.
func (s *Store) CreateUser(user *models.User) error {
	if _, err := s.GetUserByUsername(user.Username); err == nil {
		return common.ErrUserExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := s.db.Insert(user.ID, user); err != nil {
		if err == badgerhold.ErrKeyExists {
			return common.ErrUserExists
		}
		return fmt.Errorf("failed to create user '%s': %w", user.Username, err)
	}
	s.logger.Debug().Str("user_id", user.ID).Str("username", user.Username).Msg("User created")
	return nil
}

// GetUserByUsername returns the account for a username, or ErrUserNotFound.
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var users []models.User
	if err := s.db.Find(&users, badgerhold.Where("Username").Eq(username)); err != nil {
		return nil, fmt.Errorf("failed to find user '%s': %w", username, err)
	}
	if len(users) == 0 {
		return nil, common.ErrUserNotFound
	}
	return &users[0], nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements UserStore
var _ interfaces.UserStore = (*Store)(nil)
