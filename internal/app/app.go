// Package app wires configuration, storage, clients and services into a
// single application core shared by the server binary and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/portfolai/portfolai/internal/cache"
	"github.com/portfolai/portfolai/internal/clients/finnhub"
	"github.com/portfolai/portfolai/internal/clients/gemini"
	"github.com/portfolai/portfolai/internal/clients/newsapi"
	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/interfaces"
	"github.com/portfolai/portfolai/internal/services/analysis"
	"github.com/portfolai/portfolai/internal/services/movers"
	"github.com/portfolai/portfolai/internal/services/news"
	"github.com/portfolai/portfolai/internal/services/stock"
	"github.com/portfolai/portfolai/internal/services/watchlist"
	"github.com/portfolai/portfolai/internal/storage/sessiondb"
	"github.com/portfolai/portfolai/internal/storage/userdb"
	"github.com/portfolai/portfolai/internal/storage/watchlistdb"
)

// App holds all initialized clients, stores and services. Client fields are
// nil when the corresponding API key is not configured; services degrade to
// fallback data in that case.
type App struct {
	Config *common.Config
	Logger *common.Logger

	Cache          interfaces.ResponseCache
	SessionStore   interfaces.SessionStore
	UserStore      interfaces.UserStore
	WatchlistStore interfaces.WatchlistStore

	MarketClient interfaces.MarketDataClient
	NewsClient   interfaces.NewsClient
	AIClient     interfaces.AIClient

	StockService     interfaces.StockService
	MoversService    interfaces.MoversService
	NewsService      interfaces.NewsService
	AnalysisService  interfaces.AnalysisService
	WatchlistService interfaces.WatchlistService

	StartupTime time.Time

	closers []func() error
	cron    *cron.Cron
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config resolution: explicit path, PORTFOLAI_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("PORTFOLAI_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "portfolai.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/portfolai.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	a := &App{
		Config:      config,
		Logger:      logger,
		StartupTime: startupStart,
	}

	if err := a.initStorage(); err != nil {
		a.Close()
		return nil, err
	}
	a.initClients()
	a.initServices()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

func (a *App) initStorage() error {
	responseCache, err := cache.New(a.Logger, a.Config.Storage.Cache.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize response cache: %w", err)
	}
	a.Cache = responseCache
	a.closers = append(a.closers, responseCache.Close)

	sessions, err := sessiondb.NewStore(a.Logger, a.Config.Storage.Session.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	a.SessionStore = sessions
	a.closers = append(a.closers, sessions.Close)

	users, err := userdb.NewStore(a.Logger, filepath.Join(a.Config.Storage.Session.Path, "users"))
	if err != nil {
		return fmt.Errorf("failed to initialize user store: %w", err)
	}
	a.UserStore = users
	a.closers = append(a.closers, users.Close)

	watchlists, err := watchlistdb.NewStore(a.Logger, a.Config.Storage.Watchlist.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize watchlist store: %w", err)
	}
	a.WatchlistStore = watchlists
	a.closers = append(a.closers, watchlists.Close)

	return nil
}

func (a *App) initClients() {
	if key := a.Config.Clients.Finnhub.APIKey; key != "" {
		a.MarketClient = finnhub.NewClient(key,
			finnhub.WithBaseURL(a.Config.Clients.Finnhub.BaseURL),
			finnhub.WithLogger(a.Logger),
			finnhub.WithRateLimit(a.Config.Clients.Finnhub.RateLimit),
			finnhub.WithTimeout(a.Config.Clients.Finnhub.GetTimeout()),
		)
	} else {
		a.Logger.Warn().Msg("Finnhub API key not configured - serving fallback stock data")
	}

	if key := a.Config.Clients.NewsAPI.APIKey; key != "" {
		a.NewsClient = newsapi.NewClient(key,
			newsapi.WithBaseURL(a.Config.Clients.NewsAPI.BaseURL),
			newsapi.WithLogger(a.Logger),
			newsapi.WithRateLimit(a.Config.Clients.NewsAPI.RateLimit),
			newsapi.WithTimeout(a.Config.Clients.NewsAPI.GetTimeout()),
		)
	} else {
		a.Logger.Warn().Msg("News API key not configured - serving fallback news")
	}

	if key := a.Config.Clients.Gemini.APIKey; key != "" {
		client, err := gemini.NewClient(context.Background(), key,
			gemini.WithLogger(a.Logger),
			gemini.WithModel(a.Config.Clients.Gemini.Model),
		)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			a.AIClient = client
		}
	} else {
		a.Logger.Warn().Msg("Gemini API key not configured - AI analysis will use fallback responses")
	}
}

func (a *App) initServices() {
	a.StockService = stock.NewService(a.MarketClient, a.Cache, a.SessionStore, a.Logger, a.Config.DefaultSymbol)
	a.MoversService = movers.NewService(a.MarketClient, a.Cache, a.Logger)
	a.NewsService = news.NewService(a.NewsClient, a.Cache, a.Logger)
	a.AnalysisService = analysis.NewService(a.AIClient, a.MarketClient, a.NewsClient, a.SessionStore, a.WatchlistStore, a.Logger)
	a.WatchlistService = watchlist.NewService(a.WatchlistStore, a.Logger)
}

// Close releases all resources held by the App.
// Shutdown order: stop the scheduler, then close stores in reverse open order.
func (a *App) Close() {
	if a.cron != nil {
		<-a.cron.Stop().Done()
		a.cron = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing resource")
		}
	}
	a.closers = nil
}
