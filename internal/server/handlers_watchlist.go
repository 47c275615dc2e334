package server

import (
	"errors"
	"net/http"

	"github.com/portfolai/portfolai/internal/common"
)

// handleWatchlistGet handles GET /api/watchlist.
func (s *Server) handleWatchlistGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	symbols, err := s.app.WatchlistService.List(r.Context(), uc.UserID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load watchlist")
		return
	}
	if symbols == nil {
		symbols = []string{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": symbols,
		"count":   len(symbols),
	})
}

// handleWatchlistAdd handles POST /api/watchlist/add with body {symbol}.
// Returns 201 when newly added, 200 when the symbol was already tracked.
func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Symbol string `json:"symbol"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	created, err := s.app.WatchlistService.Add(r.Context(), uc.UserID, req.Symbol)
	if err != nil {
		if errors.Is(err, common.ErrEmptySymbol) {
			WriteError(w, http.StatusBadRequest, "symbol is required")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to update watchlist")
		return
	}

	if created {
		WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"symbol":  req.Symbol,
			"message": "Symbol added to watchlist",
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  req.Symbol,
		"message": "Symbol already in watchlist",
	})
}

// handleWatchlistRemove handles DELETE /api/watchlist/remove?symbol=S.
// The symbol may also be supplied in a JSON body.
func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" && r.Body != nil && r.ContentLength > 0 {
		var req struct {
			Symbol string `json:"symbol"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		symbol = req.Symbol
	}

	err := s.app.WatchlistService.Remove(r.Context(), uc.UserID, symbol)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmptySymbol):
			WriteError(w, http.StatusBadRequest, "symbol is required")
		case errors.Is(err, common.ErrNotWatched):
			WriteError(w, http.StatusNotFound, "Symbol not in watchlist")
		default:
			WriteError(w, http.StatusInternalServerError, "Failed to update watchlist")
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"message": "Symbol removed from watchlist",
	})
}
