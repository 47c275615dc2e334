package server

import (
	"errors"
	"net/http"

	"github.com/portfolai/portfolai/internal/common"
)

// handleAnalysis handles GET /api/analysis?symbol=S.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := r.URL.Query().Get("symbol")

	result, err := s.app.AnalysisService.Analyze(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, common.ErrEmptySymbol) {
			WriteError(w, http.StatusBadRequest, "symbol parameter is required")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleChatbot handles POST /api/chatbot with body {message}.
func (s *Server) handleChatbot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	reply, err := s.app.AnalysisService.Chat(r.Context(), uc.UserID, req.Message)
	if err != nil {
		if errors.Is(err, common.ErrEmptyMessage) {
			WriteError(w, http.StatusBadRequest, "Message cannot be empty")
			return
		}
		WriteError(w, http.StatusInternalServerError, "An error occurred while processing your message. Please try again later.")
		return
	}

	WriteJSON(w, http.StatusOK, reply)
}

// handleChatClear handles POST /api/chat/clear.
func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := s.app.AnalysisService.ClearChat(r.Context(), uc.UserID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to clear chat history")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
