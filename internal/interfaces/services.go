// Package interfaces defines service contracts for PortfolAI
package interfaces

import (
	"context"

	"github.com/portfolai/portfolai/internal/models"
)

// StockService retrieves dashboard stock records.
type StockService interface {
	// GetStockData retrieves the stock record for a symbol. When force is
	// true the response cache is bypassed (rate-limit stale reads excepted).
	GetStockData(ctx context.Context, symbol string, force bool) (*models.StockData, error)
}

// MoversService ranks market gainers and losers.
type MoversService interface {
	// GetMovers returns top gainers and losers across the tracked universe.
	// When force is true the cached ranking is bypassed.
	GetMovers(ctx context.Context, force bool) (*models.MarketMovers, error)
}

// NewsService retrieves financial news.
type NewsService interface {
	// GetNews returns news for a symbol, or general market news when symbol
	// is empty. When force is true the response cache is bypassed.
	GetNews(ctx context.Context, symbol string, force bool) (*models.NewsResult, error)
}

// AnalysisService produces AI analysis and conversational replies.
type AnalysisService interface {
	// Analyze generates a one-shot AI analysis for a symbol
	Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error)

	// Chat generates a conversational reply for the user's message,
	// updating the user's session history
	Chat(ctx context.Context, userID, message string) (*models.ChatReply, error)

	// ClearChat empties the user's chat history, preserving recent searches
	ClearChat(ctx context.Context, userID string) error
}

// WatchlistService manages per-user tracked symbols.
type WatchlistService interface {
	// List returns the user's symbols, newest first
	List(ctx context.Context, userID string) ([]string, error)

	// Add tracks a symbol for the user. Returns true when newly created,
	// false when the symbol was already tracked.
	Add(ctx context.Context, userID, symbol string) (bool, error)

	// Remove untracks a symbol. Returns ErrNotWatched when absent.
	Remove(ctx context.Context, userID, symbol string) error
}
