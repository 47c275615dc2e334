// Package common provides shared utilities for PortfolAI
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the PortfolAI server
type Config struct {
	Environment   string        `toml:"environment"`
	DefaultSymbol string        `toml:"default_symbol"` // symbol used when a request omits one (default "AAPL")
	Server        ServerConfig  `toml:"server"`
	Storage       StorageConfig `toml:"storage"`
	Clients       ClientsConfig `toml:"clients"`
	Logging       LoggingConfig `toml:"logging"`
	Auth          AuthConfig    `toml:"auth"`
	Refresh       RefreshConfig `toml:"refresh"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds paths for the 3 storage areas.
type StorageConfig struct {
	Cache     AreaConfig `toml:"cache"`     // Response cache (BadgerHold)
	Session   AreaConfig `toml:"session"`   // Chat sessions + users (BadgerHold)
	Watchlist AreaConfig `toml:"watchlist"` // Watchlist table (SQLite)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Finnhub FinnhubConfig `toml:"finnhub"`
	NewsAPI NewsAPIConfig `toml:"newsapi"`
	Gemini  GeminiConfig  `toml:"gemini"`
}

// FinnhubConfig holds Finnhub API configuration
type FinnhubConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FinnhubConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// NewsAPIConfig holds NewsAPI configuration
type NewsAPIConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *NewsAPIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// AuthConfig holds JWT authentication configuration.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// RefreshConfig holds the background market-movers refresh schedule.
type RefreshConfig struct {
	Enabled    bool   `toml:"enabled"`
	MoversCron string `toml:"movers_cron"` // cron spec, default every 5 minutes
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment:   "development",
		DefaultSymbol: "AAPL",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Cache:     AreaConfig{Path: "data/cache"},
			Session:   AreaConfig{Path: "data/session"},
			Watchlist: AreaConfig{Path: "data/watchlist.db"},
		},
		Clients: ClientsConfig{
			Finnhub: FinnhubConfig{
				BaseURL:   "https://finnhub.io/api/v1",
				RateLimit: 10,
				Timeout:   "10s",
			},
			NewsAPI: NewsAPIConfig{
				BaseURL:   "https://newsapi.org/v2",
				RateLimit: 5,
				Timeout:   "10s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Refresh: RefreshConfig{
			Enabled:    false,
			MoversCron: "*/5 * * * *",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PORTFOLAI_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("PORTFOLAI_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("PORTFOLAI_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("PORTFOLAI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("PORTFOLAI_DATA_PATH"); path != "" {
		config.Storage.Cache.Path = filepath.Join(path, "cache")
		config.Storage.Session.Path = filepath.Join(path, "session")
		config.Storage.Watchlist.Path = filepath.Join(path, "watchlist.db")
	}

	if sym := os.Getenv("PORTFOLAI_DEFAULT_SYMBOL"); sym != "" {
		config.DefaultSymbol = strings.ToUpper(sym)
	}

	// Provider keys: provider-native env names take priority over config values
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		config.Clients.Finnhub.APIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		config.Clients.NewsAPI.APIKey = v
	}
	if v := firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"); v != "" {
		config.Clients.Gemini.APIKey = v
	}

	if v := os.Getenv("PORTFOLAI_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("PORTFOLAI_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
