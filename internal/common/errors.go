package common

import (
	"errors"
	"strings"
)

// Sentinel errors shared across services. Handlers map these to HTTP codes.
var (
	// ErrSymbolNotFound indicates no data exists for a requested symbol
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrEmptyMessage indicates a chat request with no message content
	ErrEmptyMessage = errors.New("message is required")

	// ErrEmptySymbol indicates a request with no symbol where one is required
	ErrEmptySymbol = errors.New("symbol is required")

	// ErrNotWatched indicates a watchlist removal for an untracked symbol
	ErrNotWatched = errors.New("symbol not in watchlist")

	// ErrUserExists indicates a signup with a taken username
	ErrUserExists = errors.New("username already exists")

	// ErrUserNotFound indicates a lookup for an unknown user
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// IsRateLimitError reports whether an error indicates upstream rate limiting.
// Providers signal this inconsistently (HTTP 429, textual messages), so this
// matches on the error text.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "ratelimited")
}
