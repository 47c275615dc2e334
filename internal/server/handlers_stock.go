package server

import (
	"errors"
	"net/http"

	"github.com/portfolai/portfolai/internal/common"
)

// handleStockData handles GET /api/stock-data?symbol=S&force_refresh=bool.
func (s *Server) handleStockData(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := r.URL.Query().Get("symbol")
	force := boolParam(r, "force_refresh")

	data, err := s.app.StockService.GetStockData(r.Context(), symbol, force)
	if err != nil {
		if errors.Is(err, common.ErrSymbolNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, data)
}

// handleMarketMovers handles GET /api/market-movers.
func (s *Server) handleMarketMovers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	movers, err := s.app.MoversService.GetMovers(r.Context(), boolParam(r, "force_refresh"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch market movers")
		return
	}

	WriteJSON(w, http.StatusOK, movers)
}
