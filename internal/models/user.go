package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and never
// serialized.
type User struct {
	ID           string    `json:"id" badgerhold:"key"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// WatchlistItem is one tracked symbol for a user.
type WatchlistItem struct {
	UserID    string    `json:"user_id"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}
