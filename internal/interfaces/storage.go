package interfaces

import (
	"time"

	"github.com/portfolai/portfolai/internal/models"
)

// ResponseCache is a TTL key-value cache for assembled API responses.
// Writes are last-writer-wins; entries are never evicted except by expiry.
type ResponseCache interface {
	// Get returns the entry for key if present and unexpired
	Get(key string, out any) (bool, error)

	// GetStale returns the entry for key even when expired. Used to serve
	// degraded data while the upstream provider is rate limiting.
	GetStale(key string, out any) (bool, error)

	// Set stores value under key with the given TTL
	Set(key string, value any, ttl time.Duration) error
}

// SessionStore persists per-user chat sessions.
type SessionStore interface {
	// GetSession returns the user's session, creating an empty one if absent
	GetSession(userID string) (*models.ChatSession, error)

	// SaveSession upserts the user's session
	SaveSession(session *models.ChatSession) error
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser stores a new account. Returns ErrUserExists on duplicate username.
	CreateUser(user *models.User) error

	// GetUserByUsername returns the account for a username, or ErrUserNotFound.
	GetUserByUsername(username string) (*models.User, error)
}

// WatchlistStore persists per-user tracked symbols.
type WatchlistStore interface {
	// List returns the user's items ordered newest first
	List(userID string) ([]models.WatchlistItem, error)

	// Add inserts a (user, symbol) row. Returns false without error when the
	// row already exists.
	Add(userID, symbol string) (bool, error)

	// Remove deletes a (user, symbol) row. Returns false when no row matched.
	Remove(userID, symbol string) (bool, error)
}
