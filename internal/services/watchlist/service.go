// Package watchlist provides per-user watchlist management
package watchlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.WatchlistService = (*Service)(nil)

// Service implements WatchlistService
type Service struct {
	store  interfaces.WatchlistStore
	logger *common.Logger
}

// NewService creates a new watchlist service
func NewService(store interfaces.WatchlistStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// List returns the user's symbols, newest first.
func (s *Service) List(_ context.Context, userID string) ([]string, error) {
	items, err := s.store.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	symbols := make([]string, len(items))
	for i, item := range items {
		symbols[i] = item.Symbol
	}
	return symbols, nil
}

// Add tracks a symbol for the user. Returns true when newly created, false
// when the symbol was already tracked.
func (s *Service) Add(_ context.Context, userID, symbol string) (bool, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return false, common.ErrEmptySymbol
	}
	created, err := s.store.Add(userID, symbol)
	if err != nil {
		return false, fmt.Errorf("failed to add to watchlist: %w", err)
	}
	if created {
		s.logger.Info().Str("user_id", userID).Str("symbol", symbol).Msg("Symbol added to watchlist")
	}
	return created, nil
}

// Remove untracks a symbol. Returns ErrNotWatched when absent.
func (s *Service) Remove(_ context.Context, userID, symbol string) error {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return common.ErrEmptySymbol
	}
	removed, err := s.store.Remove(userID, symbol)
	if err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	if !removed {
		return common.ErrNotWatched
	}
	s.logger.Info().Str("user_id", userID).Str("symbol", symbol).Msg("Symbol removed from watchlist")
	return nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
