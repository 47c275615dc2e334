// Package stock provides the dashboard stock data service
package stock

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/fallback"
	"github.com/portfolai/portfolai/internal/interfaces"
	"github.com/portfolai/portfolai/internal/models"
)

// Compile-time interface check
var _ interfaces.StockService = (*Service)(nil)

const (
	cacheKeyPrefix = "stock_data_"
	cacheTTL       = 60 * time.Second
)

// Service implements StockService. The market data client is optional; when
// nil the service serves the fallback catalog only.
type Service struct {
	client        interfaces.MarketDataClient
	cache         interfaces.ResponseCache
	sessions      interfaces.SessionStore
	logger        *common.Logger
	defaultSymbol string
}

// NewService creates a new stock data service
func NewService(client interfaces.MarketDataClient, cache interfaces.ResponseCache, sessions interfaces.SessionStore, logger *common.Logger, defaultSymbol string) *Service {
	if defaultSymbol == "" {
		defaultSymbol = "AAPL"
	}
	return &Service{
		client:        client,
		cache:         cache,
		sessions:      sessions,
		logger:        logger,
		defaultSymbol: defaultSymbol,
	}
}

// GetStockData retrieves the stock record for a symbol. When force is true
// the response cache is bypassed, except that stale entries may still be
// served while the provider is rate limiting.
func (s *Service) GetStockData(ctx context.Context, symbol string, force bool) (*models.StockData, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		symbol = s.defaultSymbol
	}

	// Recent searches update happens before any provider call so the
	// session reflects intent even when the lookup fails.
	s.recordSearch(ctx, symbol)

	cacheKey := cacheKeyPrefix + symbol
	if !force {
		var cached models.StockData
		if ok, err := s.cache.Get(cacheKey, &cached); err == nil && ok {
			s.logger.Debug().Str("symbol", symbol).Msg("Returning cached stock data")
			return &cached, nil
		}
	} else {
		s.logger.Info().Str("symbol", symbol).Msg("Force refresh requested, bypassing cache")
	}

	if s.client == nil {
		if data, ok := fallback.StockData(symbol, false); ok {
			return data, nil
		}
		return nil, fmt.Errorf("%w: no data available for symbol %s (API not configured)", common.ErrSymbolNotFound, symbol)
	}

	quote, err := s.client.GetQuote(ctx, symbol)
	if err != nil {
		return s.handleQuoteError(symbol, cacheKey, err)
	}

	// A zero current price means the provider has no data for the symbol.
	if quote.Current == 0 {
		if data, ok := fallback.StockData(symbol, false); ok {
			return data, nil
		}
		return nil, fmt.Errorf("%w: no data found for symbol %s", common.ErrSymbolNotFound, symbol)
	}

	data := s.assemble(ctx, symbol, quote)

	if err := s.cache.Set(cacheKey, data, cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache stock data")
	}

	return data, nil
}

// assemble builds the stock record from the quote plus best-effort profile
// and metrics lookups.
func (s *Service) assemble(ctx context.Context, symbol string, quote *models.Quote) *models.StockData {
	change := quote.Current - quote.PreviousClose
	changePercent := 0.0
	if quote.PreviousClose != 0 {
		changePercent = change / quote.PreviousClose * 100
	}

	data := &models.StockData{
		Symbol:        symbol,
		Name:          symbol,
		Price:         round2(quote.Current),
		Change:        round2(change),
		ChangePercent: round2(changePercent),
		Open:          quote.Open,
		High:          quote.High,
		Low:           quote.Low,
		Volume:        quote.Volume,
		YearHigh:      quote.High,
		YearLow:       quote.Low,
	}

	if profile, err := s.client.GetCompanyProfile(ctx, symbol); err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Could not fetch company profile")
	} else {
		if profile.Name != "" {
			data.Name = profile.Name
		}
		data.MarketCap = profile.MarketCapitalization
	}

	if metrics, err := s.client.GetCompanyMetrics(ctx, symbol); err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Could not fetch company metrics")
	} else {
		if metrics.FiftyTwoWeekHigh != 0 {
			data.YearHigh = metrics.FiftyTwoWeekHigh
		}
		if metrics.FiftyTwoWeekLow != 0 {
			data.YearLow = metrics.FiftyTwoWeekLow
		}
		data.PERatio = metrics.PERatio
	}

	return data
}

// handleQuoteError resolves a provider failure into stale cache data, a
// fallback record, or an error.
func (s *Service) handleQuoteError(symbol, cacheKey string, err error) (*models.StockData, error) {
	if common.IsRateLimitError(err) {
		s.logger.Warn().Str("symbol", symbol).Msg("Rate limit hit, trying stale cache")
		var stale models.StockData
		if ok, cacheErr := s.cache.GetStale(cacheKey, &stale); cacheErr == nil && ok {
			return &stale, nil
		}
		if data, ok := fallback.StockData(symbol, true); ok {
			return data, nil
		}
		return nil, fmt.Errorf("rate limited and no cached data for %s: %w", symbol, err)
	}

	s.logger.Error().Err(err).Str("symbol", symbol).Msg("Error fetching stock data")
	if data, ok := fallback.StockData(symbol, false); ok {
		return data, nil
	}
	return nil, fmt.Errorf("failed to fetch data for %s: %w", symbol, err)
}

// recordSearch appends the symbol to the user's recent searches when the
// request carries an authenticated user.
func (s *Service) recordSearch(ctx context.Context, symbol string) {
	userID := common.ResolveUserID(ctx)
	if userID == "" {
		return
	}
	session, err := s.sessions.GetSession(userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Could not load session for recent searches")
		return
	}
	session.RecordSearch(symbol)
	if err := s.sessions.SaveSession(session); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Could not save recent searches")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
