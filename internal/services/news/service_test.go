package news

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/models"
)

// --- Mocks ---

type mockNewsClient struct {
	everything       *models.NewsResponse
	everythingErr    error
	headlines        *models.NewsResponse
	headlinesErr     error
	everythingCalled bool
	headlinesCalled  bool
	lastQuery        string
	lastCategory     string
}

func (m *mockNewsClient) GetEverything(_ context.Context, query, _, _, _ string, _ int) (*models.NewsResponse, error) {
	m.everythingCalled = true
	m.lastQuery = query
	return m.everything, m.everythingErr
}

func (m *mockNewsClient) GetTopHeadlines(_ context.Context, category string, _ int) (*models.NewsResponse, error) {
	m.headlinesCalled = true
	m.lastCategory = category
	return m.headlines, m.headlinesErr
}

type mockCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockCache) Get(key string, out any) (bool, error) {
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, out)
}

func (m *mockCache) GetStale(key string, out any) (bool, error) {
	return m.Get(key, out)
}

func (m *mockCache) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	m.ttls[key] = ttl
	return nil
}

func goodResponse(titles ...string) *models.NewsResponse {
	articles := make([]models.RawArticle, len(titles))
	for i, title := range titles {
		articles[i] = models.RawArticle{
			Title:       title,
			URL:         "https://example.com/" + title,
			Source:      models.RawSource{Name: "Example Wire"},
			PublishedAt: "2026-08-29T10:00:00Z",
		}
	}
	return &models.NewsResponse{Status: "ok", TotalResults: len(titles), Articles: articles}
}

func newTestService(client *mockNewsClient, cache *mockCache) *Service {
	if cache == nil {
		cache = newMockCache()
	}
	var svc *Service
	if client == nil {
		svc = NewService(nil, cache, common.NewSilentLogger())
	} else {
		svc = NewService(client, cache, common.NewSilentLogger())
	}
	svc.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

// --- Tests ---

func TestGetNews_SymbolNews(t *testing.T) {
	client := &mockNewsClient{everything: goodResponse("Apple beats estimates")}
	cache := newMockCache()
	svc := newTestService(client, cache)

	result, err := svc.GetNews(context.Background(), "aapl", false)
	require.NoError(t, err)
	require.Len(t, result.Articles, 1)
	assert.Equal(t, "Apple beats estimates", result.Articles[0].Title)
	assert.Equal(t, "Example Wire", result.Articles[0].Source)
	assert.False(t, result.Fallback)
	assert.Equal(t, "AAPL stock", client.lastQuery)
	assert.False(t, client.headlinesCalled, "headlines should not be needed on search success")
	assert.Equal(t, 600*time.Second, cache.ttls["news_AAPL"])
}

func TestGetNews_GeneralNews(t *testing.T) {
	client := &mockNewsClient{headlines: goodResponse("Markets open higher")}
	cache := newMockCache()
	svc := newTestService(client, cache)

	result, err := svc.GetNews(context.Background(), "", false)
	require.NoError(t, err)
	require.Len(t, result.Articles, 1)
	assert.Equal(t, "business", client.lastCategory)
	assert.False(t, client.everythingCalled, "search should not be needed on headline success")
	assert.Equal(t, 600*time.Second, cache.ttls["news_general"])
}

func TestGetNews_SymbolSearchFails_FallsBackToHeadlines(t *testing.T) {
	client := &mockNewsClient{
		everythingErr: errors.New("search unavailable"),
		headlines:     goodResponse("Business roundup"),
	}
	svc := newTestService(client, nil)

	result, err := svc.GetNews(context.Background(), "TSLA", false)
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	assert.Equal(t, "Business roundup", result.Articles[0].Title)
	assert.True(t, client.headlinesCalled)
}

func TestGetNews_GeneralHeadlinesFail_FallsBackToSearch(t *testing.T) {
	client := &mockNewsClient{
		headlinesErr: errors.New("headlines unavailable"),
		everything:   goodResponse("Economy update"),
	}
	svc := newTestService(client, nil)

	result, err := svc.GetNews(context.Background(), "", false)
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	assert.Equal(t, "Economy update", result.Articles[0].Title)
	assert.Equal(t, "stock market OR finance OR economy", client.lastQuery)
}

func TestGetNews_BothChainsFail_ServesStaticFallbackWithShortTTL(t *testing.T) {
	client := &mockNewsClient{
		everythingErr: errors.New("search down"),
		headlinesErr:  errors.New("headlines down"),
	}
	cache := newMockCache()
	svc := newTestService(client, cache)

	result, err := svc.GetNews(context.Background(), "AAPL", false)
	require.NoError(t, err, "provider failure should degrade, not error")
	assert.True(t, result.Fallback)
	assert.Len(t, result.Articles, 3)
	assert.Equal(t, 60*time.Second, cache.ttls["news_AAPL"], "error fallback should cache briefly so recovery retries soon")
}

func TestGetNews_PayloadError_TriggersFallbackChain(t *testing.T) {
	client := &mockNewsClient{
		everything: &models.NewsResponse{Status: "error", Code: "rateLimited", Message: "slow down"},
		headlines:  goodResponse("Headline after rate limit"),
	}
	svc := newTestService(client, nil)

	result, err := svc.GetNews(context.Background(), "NVDA", false)
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	assert.Equal(t, "Headline after rate limit", result.Articles[0].Title)
}

func TestGetNews_NoClient_ServesStaticFallback(t *testing.T) {
	svc := newTestService(nil, nil)

	result, err := svc.GetNews(context.Background(), "", false)
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Len(t, result.Articles, 3)
}

func TestGetNews_CacheHit(t *testing.T) {
	client := &mockNewsClient{headlines: goodResponse("First fetch")}
	cache := newMockCache()
	svc := newTestService(client, cache)

	_, err := svc.GetNews(context.Background(), "", false)
	require.NoError(t, err)

	client.headlinesCalled = false
	result, err := svc.GetNews(context.Background(), "", false)
	require.NoError(t, err)
	assert.False(t, client.headlinesCalled, "second call should hit the cache")
	assert.Equal(t, "First fetch", result.Articles[0].Title)
}

func TestGetNews_EmptyArticles_ServesFallbackUncached(t *testing.T) {
	client := &mockNewsClient{headlines: &models.NewsResponse{Status: "ok"}}
	cache := newMockCache()
	svc := newTestService(client, cache)

	result, err := svc.GetNews(context.Background(), "", false)
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	_, cached := cache.entries["news_general"]
	assert.False(t, cached, "empty responses should not be cached")
}

func TestProcessArticles_FiltersAndDefaults(t *testing.T) {
	svc := newTestService(&mockNewsClient{}, nil)

	resp := &models.NewsResponse{Articles: []models.RawArticle{
		{Title: "", URL: "https://example.com/no-title"},
		{Title: "No URL"},
		{Title: "Kept", URL: "https://example.com/kept", PublishedAt: "2026-08-30T10:00:00Z"},
	}}

	items := svc.processArticles(resp)
	require.Len(t, items, 1)
	assert.Equal(t, "Kept", items[0].Title)
	assert.Equal(t, "Unknown Source", items[0].Source)
}

func TestFormatTimeAgo(t *testing.T) {
	svc := newTestService(&mockNewsClient{}, nil)
	// now is pinned to 2026-08-30T12:00:00Z

	tests := []struct {
		publishedAt string
		want        string
	}{
		{"2026-08-30T11:30:00Z", "30m ago"},
		{"2026-08-30T09:00:00Z", "3h ago"},
		{"2026-08-28T12:00:00Z", "2d ago"},
		{"2026-08-30T12:05:00Z", "0m ago"},
		{"", "Recently"},
		{"not-a-timestamp", "Recently"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.formatTimeAgo(tt.publishedAt), "publishedAt=%q", tt.publishedAt)
	}
}

func TestCheckPayloadError(t *testing.T) {
	assert.Error(t, checkPayloadError(nil))
	assert.NoError(t, checkPayloadError(&models.NewsResponse{Status: "ok"}))
	assert.Error(t, checkPayloadError(&models.NewsResponse{Status: "error", Message: "bad key"}))
	err := checkPayloadError(&models.NewsResponse{Status: "error", Code: "rateLimited"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
