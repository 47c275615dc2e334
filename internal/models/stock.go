// Package models defines the data structures for PortfolAI
package models

import "time"

// Quote is a point-in-time price snapshot for a symbol, as returned by the
// market data provider.
type Quote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	Open          float64 `json:"o"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	PreviousClose float64 `json:"pc"`
	Volume        int64   `json:"v"`
}

// CompanyProfile holds descriptive company data from the market data provider.
type CompanyProfile struct {
	Name                 string  `json:"name"`
	Ticker               string  `json:"ticker"`
	Exchange             string  `json:"exchange"`
	Industry             string  `json:"finnhubIndustry"`
	MarketCapitalization float64 `json:"marketCapitalization"`
}

// CompanyMetrics holds the subset of basic financials the dashboard uses.
type CompanyMetrics struct {
	FiftyTwoWeekHigh float64 `json:"52WeekHigh"`
	FiftyTwoWeekLow  float64 `json:"52WeekLow"`
	PERatio          float64 `json:"peBasicExclExtraTTM"`
}

// StockData is the dashboard-facing stock record assembled from quote,
// profile and metrics, or synthesized from the fallback catalog.
type StockData struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
	PERatio       float64 `json:"peRatio"`
	YearHigh      float64 `json:"yearHigh"`
	YearLow       float64 `json:"yearLow"`
	Fallback      bool    `json:"fallback,omitempty"`
	RateLimited   bool    `json:"rateLimited,omitempty"`
}

// Mover is one entry in the market movers ranking.
type Mover struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// MarketMovers holds the ranked gainers and losers lists. Gainers and Losers
// are always non-nil, even when empty.
type MarketMovers struct {
	Gainers  []Mover `json:"gainers"`
	Losers   []Mover `json:"losers"`
	Fallback bool    `json:"fallback,omitempty"`
}

// AnalysisResult is the one-shot AI analysis payload for a symbol.
type AnalysisResult struct {
	Symbol    string    `json:"symbol"`
	Analysis  string    `json:"analysis"`
	Timestamp time.Time `json:"timestamp"`
	Fallback  bool      `json:"fallback,omitempty"`
}
