// Package movers provides the market movers ranking service
package movers

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/fallback"
	"github.com/portfolai/portfolai/internal/interfaces"
	"github.com/portfolai/portfolai/internal/models"
)

// Compile-time interface check
var _ interfaces.MoversService = (*Service)(nil)

const (
	cacheKey = "market_movers"
	cacheTTL = 120 * time.Second
)

// universe is the fixed symbol set swept for the movers ranking. Company
// profiles are skipped to halve the provider calls per sweep.
var universe = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA",
	"NVDA", "META", "NFLX", "AMD", "INTC",
}

// Service implements MoversService. The market data client is optional; when
// nil the fallback catalog ranking is served.
type Service struct {
	client interfaces.MarketDataClient
	cache  interfaces.ResponseCache
	logger *common.Logger
}

// NewService creates a new market movers service
func NewService(client interfaces.MarketDataClient, cache interfaces.ResponseCache, logger *common.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// GetMovers returns top gainers and losers across the tracked universe.
func (s *Service) GetMovers(ctx context.Context, force bool) (*models.MarketMovers, error) {
	if !force {
		var cached models.MarketMovers
		if ok, err := s.cache.Get(cacheKey, &cached); err == nil && ok {
			s.logger.Debug().Msg("Returning cached market movers")
			return &cached, nil
		}
	}

	movers := s.sweep(ctx)

	if err := s.cache.Set(cacheKey, movers, cacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache market movers")
	}

	return movers, nil
}

// sweep collects quotes across the universe and ranks them. A rate limit
// stops the sweep and the partial data collected so far is ranked; any other
// provider failure yields the fallback ranking.
func (s *Service) sweep(ctx context.Context) *models.MarketMovers {
	if s.client == nil {
		return fallbackMovers()
	}

	var entries []models.Mover
	for _, symbol := range universe {
		quote, err := s.client.GetQuote(ctx, symbol)
		if err != nil {
			if common.IsRateLimitError(err) {
				s.logger.Warn().Str("symbol", symbol).Msg("Rate limit hit during movers sweep, using partial data")
				break
			}
			s.logger.Error().Err(err).Str("symbol", symbol).Msg("Error fetching market data")
			return fallbackMovers()
		}
		if entry, ok := processQuote(symbol, quote); ok {
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return fallbackMovers()
	}

	return rank(entries, false)
}

// processQuote converts a quote into a mover entry, skipping invalid quotes.
func processQuote(symbol string, quote *models.Quote) (models.Mover, bool) {
	if quote == nil || quote.Current == 0 {
		return models.Mover{}, false
	}

	change := quote.Current - quote.PreviousClose
	changePercent := 0.0
	if quote.PreviousClose != 0 {
		changePercent = change / quote.PreviousClose * 100
	}

	return models.Mover{
		Symbol:        symbol,
		Name:          symbol, // skip the profile call, use the symbol as name
		Price:         round2(quote.Current),
		Change:        round2(change),
		ChangePercent: round2(changePercent),
	}, true
}

// rank sorts entries by change percent descending and splits them into the
// top 5 gainers and bottom 5 losers, losers ordered worst first.
func rank(entries []models.Mover, isFallback bool) *models.MarketMovers {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangePercent > entries[j].ChangePercent
	})

	gainers := make([]models.Mover, 0, 5)
	gainers = append(gainers, entries[:min(5, len(entries))]...)

	losers := make([]models.Mover, 0, 5)
	for i := len(entries) - 1; i >= 0 && i >= len(entries)-5; i-- {
		losers = append(losers, entries[i])
	}

	return &models.MarketMovers{
		Gainers:  gainers,
		Losers:   losers,
		Fallback: isFallback,
	}
}

func fallbackMovers() *models.MarketMovers {
	return rank(fallback.MoverEntries(), true)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
