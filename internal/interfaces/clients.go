package interfaces

import (
	"context"

	"github.com/portfolai/portfolai/internal/models"
)

// MarketDataClient provides quotes, company profiles and basic financials.
type MarketDataClient interface {
	// GetQuote fetches the current quote for a symbol
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetCompanyProfile fetches descriptive company data for a symbol
	GetCompanyProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)

	// GetCompanyMetrics fetches basic financials for a symbol
	GetCompanyMetrics(ctx context.Context, symbol string) (*models.CompanyMetrics, error)
}

// NewsClient provides financial news retrieval.
type NewsClient interface {
	// GetEverything searches all articles matching a query within a date window.
	// from and to are YYYY-MM-DD dates; sortBy is a provider sort key.
	GetEverything(ctx context.Context, query, from, to, sortBy string, pageSize int) (*models.NewsResponse, error)

	// GetTopHeadlines fetches current headlines for a category
	GetTopHeadlines(ctx context.Context, category string, pageSize int) (*models.NewsResponse, error)
}

// AIClient provides text generation for analysis and chat.
type AIClient interface {
	// GenerateContent produces a completion for a single prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// Chat produces a reply given a system prompt and conversation history
	Chat(ctx context.Context, systemPrompt string, history []models.ChatTurn, message string) (string, error)
}
