// Package fallback provides static market data served when external
// providers are unavailable or failing.
package fallback

import (
	"math"

	"github.com/portfolai/portfolai/internal/models"
)

// Stock is a static catalog entry.
type Stock struct {
	Name          string
	Price         float64
	Change        float64
	ChangePercent float64
}

// stocks is the static quote catalog. Values are fixed; lookups are pure.
var stocks = map[string]Stock{
	"AAPL":  {Name: "Apple Inc.", Price: 150.25, Change: 2.15, ChangePercent: 1.45},
	"MSFT":  {Name: "Microsoft Corp.", Price: 420.72, Change: -0.50, ChangePercent: -0.12},
	"GOOGL": {Name: "Alphabet Inc.", Price: 175.60, Change: 2.10, ChangePercent: 1.21},
	"AMZN":  {Name: "Amazon.com Inc.", Price: 180.97, Change: -1.80, ChangePercent: -0.98},
	"TSLA":  {Name: "Tesla Inc.", Price: 177.46, Change: 3.50, ChangePercent: 2.01},
	"NVDA":  {Name: "NVIDIA Corporation", Price: 900.55, Change: 15.20, ChangePercent: 1.72},
	"META":  {Name: "Meta Platforms Inc.", Price: 480.10, Change: -2.30, ChangePercent: -0.48},
	"OKLO":  {Name: "Oklo Inc.", Price: 12.45, Change: 0.85, ChangePercent: 7.33},
}

// news is the static article set served when the news provider yields nothing.
var news = []models.NewsArticle{
	{
		Title:       "Tech Stocks Rally on Positive Economic Outlook",
		Source:      "Market News Today",
		Time:        "2h ago",
		URL:         "#",
		Description: "Technology stocks show strong performance amid positive economic indicators.",
	},
	{
		Title:       "Federal Reserve Hints at Interest Rate Stability",
		Source:      "Global Finance Times",
		Time:        "3h ago",
		URL:         "#",
		Description: "Central bank signals potential stability in interest rate policy.",
	},
	{
		Title:       "AGI Lead to End of the World as we know it",
		Source:      "Onion",
		Time:        "1h ago",
		URL:         "#",
		Description: "Artificial intelligence companies show continued strong performance.",
	},
}

// Lookup returns the catalog entry for a symbol.
func Lookup(symbol string) (Stock, bool) {
	s, ok := stocks[symbol]
	return s, ok
}

// StockData builds a complete stock record from the catalog entry for symbol.
// Session fields (open/high/low, year range) are derived from price and
// change; volume and valuation fields use fixed placeholders.
func StockData(symbol string, rateLimited bool) (*models.StockData, bool) {
	s, ok := stocks[symbol]
	if !ok {
		return nil, false
	}
	abs := math.Abs(s.Change)
	return &models.StockData{
		Symbol:        symbol,
		Name:          s.Name,
		Price:         s.Price,
		Change:        s.Change,
		ChangePercent: s.ChangePercent,
		Open:          s.Price - s.Change,
		High:          s.Price + abs,
		Low:           s.Price - abs,
		Volume:        1000000,
		MarketCap:     0,
		PERatio:       0,
		YearHigh:      s.Price + abs,
		YearLow:       s.Price - abs,
		Fallback:      true,
		RateLimited:   rateLimited,
	}, true
}

// MoverEntries returns the whole catalog as mover entries, in no particular
// order.
func MoverEntries() []models.Mover {
	entries := make([]models.Mover, 0, len(stocks))
	for sym, s := range stocks {
		entries = append(entries, models.Mover{
			Symbol:        sym,
			Name:          s.Name,
			Price:         s.Price,
			Change:        s.Change,
			ChangePercent: s.ChangePercent,
		})
	}
	return entries
}

// News returns the static article set.
func News() []models.NewsArticle {
	out := make([]models.NewsArticle, len(news))
	copy(out, news)
	return out
}
