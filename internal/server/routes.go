package server

import (
	"net/http"
	"time"

	"github.com/portfolai/portfolai/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Users + auth
	mux.HandleFunc("/api/users", s.handleUserCreate)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)

	// Market data
	mux.HandleFunc("/api/stock-data", s.handleStockData)
	mux.HandleFunc("/api/market-movers", s.handleMarketMovers)
	mux.HandleFunc("/api/news", s.handleNews)

	// AI
	mux.HandleFunc("/api/analysis", s.handleAnalysis)
	mux.HandleFunc("/api/chatbot", s.handleChatbot)
	mux.HandleFunc("/api/chat/clear", s.handleChatClear)

	// Watchlist
	mux.HandleFunc("/api/watchlist", s.handleWatchlistGet)
	mux.HandleFunc("/api/watchlist/add", s.handleWatchlistAdd)
	mux.HandleFunc("/api/watchlist/remove", s.handleWatchlistRemove)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":        s.app.Config.Environment,
		"default_symbol":     s.app.Config.DefaultSymbol,
		"logging_level":      s.app.Config.Logging.Level,
		"finnhub_api_key":    maskSecret(s.app.Config.Clients.Finnhub.APIKey),
		"newsapi_api_key":    maskSecret(s.app.Config.Clients.NewsAPI.APIKey),
		"gemini_api_key":     maskSecret(s.app.Config.Clients.Gemini.APIKey),
		"finnhub_configured": s.app.MarketClient != nil,
		"newsapi_configured": s.app.NewsClient != nil,
		"gemini_configured":  s.app.AIClient != nil,
	})
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
