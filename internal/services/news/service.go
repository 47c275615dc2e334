// Package news provides the financial news service
package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/fallback"
	"github.com/portfolai/portfolai/internal/interfaces"
	"github.com/portfolai/portfolai/internal/models"
)

// Compile-time interface check
var _ interfaces.NewsService = (*Service)(nil)

const (
	cacheKeyPrefix = "news_"
	successTTL     = 600 * time.Second
	errorTTL       = 60 * time.Second

	symbolPageSize  = 3
	generalPageSize = 10
)

// Service implements NewsService. The news client is optional; when nil the
// static fallback articles are served.
type Service struct {
	client interfaces.NewsClient
	cache  interfaces.ResponseCache
	logger *common.Logger
	now    func() time.Time
}

// NewService creates a new news service
func NewService(client interfaces.NewsClient, cache interfaces.ResponseCache, logger *common.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// GetNews returns news for a symbol, or general market news when symbol is
// empty. Successful responses cache for 10 minutes; fallback responses after
// a provider error cache for 1 minute so recovery is retried soon.
func (s *Service) GetNews(ctx context.Context, symbol string, force bool) (*models.NewsResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	scope := symbol
	if scope == "" {
		scope = "general"
	}
	cacheKey := cacheKeyPrefix + scope

	if !force {
		var cached models.NewsResult
		if ok, err := s.cache.Get(cacheKey, &cached); err == nil && ok {
			s.logger.Debug().Str("scope", scope).Msg("Returning cached news")
			return &cached, nil
		}
	} else {
		s.logger.Info().Str("scope", scope).Msg("Force refresh requested for news, bypassing cache")
	}

	if s.client == nil {
		return fallbackNews(), nil
	}

	var (
		resp *models.NewsResponse
		err  error
	)
	if symbol != "" {
		resp, err = s.fetchSymbolNews(ctx, symbol)
	} else {
		resp, err = s.fetchGeneralNews(ctx)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("scope", scope).Msg("Error fetching news")
		result := fallbackNews()
		if cacheErr := s.cache.Set(cacheKey, result, errorTTL); cacheErr != nil {
			s.logger.Warn().Err(cacheErr).Str("scope", scope).Msg("Failed to cache fallback news")
		}
		return result, nil
	}

	articles := s.processArticles(resp)
	if len(articles) == 0 {
		s.logger.Warn().Str("scope", scope).Msg("No usable articles in news response")
		return fallbackNews(), nil
	}

	result := &models.NewsResult{
		Articles:     articles,
		TotalResults: resp.TotalResults,
	}
	if err := s.cache.Set(cacheKey, result, successTTL); err != nil {
		s.logger.Warn().Err(err).Str("scope", scope).Msg("Failed to cache news")
	}
	return result, nil
}

// fetchSymbolNews searches company-specific articles, falling back to
// business headlines when the search fails.
func (s *Service) fetchSymbolNews(ctx context.Context, symbol string) (*models.NewsResponse, error) {
	from, to := s.dateRange()

	resp, err := s.client.GetEverything(ctx, symbol+" stock", from, to, "popularity", symbolPageSize)
	if err == nil {
		err = checkPayloadError(resp)
	}
	if err == nil {
		return resp, nil
	}
	s.logger.Warn().Err(err).Str("symbol", symbol).Msg("News search failed, trying headlines")

	resp, err = s.client.GetTopHeadlines(ctx, "business", symbolPageSize)
	if err == nil {
		err = checkPayloadError(resp)
	}
	if err != nil {
		return nil, fmt.Errorf("news fallback also failed for %s: %w", symbol, err)
	}
	return resp, nil
}

// fetchGeneralNews retrieves business headlines, falling back to a broad
// market search when headlines fail.
func (s *Service) fetchGeneralNews(ctx context.Context) (*models.NewsResponse, error) {
	resp, err := s.client.GetTopHeadlines(ctx, "business", generalPageSize)
	if err == nil {
		err = checkPayloadError(resp)
	}
	if err == nil {
		return resp, nil
	}
	s.logger.Warn().Err(err).Msg("Top headlines failed, trying search")

	from, to := s.dateRange()
	resp, err = s.client.GetEverything(ctx, "stock market OR finance OR economy", from, to, "popularity", generalPageSize)
	if err == nil {
		err = checkPayloadError(resp)
	}
	if err != nil {
		return nil, fmt.Errorf("general news fallback also failed: %w", err)
	}
	return resp, nil
}

// dateRange returns the search window: 30 days ago through yesterday.
func (s *Service) dateRange() (from, to string) {
	now := s.now()
	return now.AddDate(0, 0, -30).Format("2006-01-02"), now.AddDate(0, 0, -1).Format("2006-01-02")
}

// checkPayloadError surfaces provider errors delivered inside a 200 payload.
func checkPayloadError(resp *models.NewsResponse) error {
	if resp == nil {
		return fmt.Errorf("empty news response")
	}
	if resp.Status != "error" {
		return nil
	}
	msg := resp.Message
	if msg == "" {
		msg = "unknown error"
	}
	if resp.Code == "rateLimited" {
		return fmt.Errorf("news API rate limited: %s", msg)
	}
	return fmt.Errorf("news API error: %s", msg)
}

// processArticles converts raw provider articles into dashboard items,
// dropping any without a title or URL.
func (s *Service) processArticles(resp *models.NewsResponse) []models.NewsArticle {
	items := make([]models.NewsArticle, 0, len(resp.Articles))
	for _, raw := range resp.Articles {
		if raw.Title == "" || raw.URL == "" {
			continue
		}
		source := raw.Source.Name
		if source == "" {
			source = "Unknown Source"
		}
		items = append(items, models.NewsArticle{
			Title:       raw.Title,
			Source:      source,
			Time:        s.formatTimeAgo(raw.PublishedAt),
			URL:         raw.URL,
			Description: raw.Description,
			PublishedAt: raw.PublishedAt,
		})
	}
	return items
}

// formatTimeAgo renders a published timestamp as a relative age string.
func (s *Service) formatTimeAgo(publishedAt string) string {
	if publishedAt == "" {
		return "Recently"
	}
	t, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return "Recently"
	}
	age := s.now().Sub(t)
	switch {
	case age >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	case age >= time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		minutes := int(age.Minutes())
		if minutes < 0 {
			minutes = 0
		}
		return fmt.Sprintf("%dm ago", minutes)
	}
}

func fallbackNews() *models.NewsResult {
	articles := fallback.News()
	return &models.NewsResult{
		Articles:     articles,
		TotalResults: len(articles),
		Fallback:     true,
	}
}
