package server

import (
	"net/http"
)

// handleNews handles GET /api/news?symbol=S&force_refresh=bool. Symbol is
// optional; without it general market news is returned.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := r.URL.Query().Get("symbol")
	force := boolParam(r, "force_refresh")

	result, err := s.app.NewsService.GetNews(r.Context(), symbol, force)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch news")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
