package models

import "time"

// ChatTurn is a single message in a conversation. Role is "user" or "assistant".
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatSession holds the per-user conversational state: trailing chat history
// and the bounded list of recently searched symbols (newest last, max 5).
type ChatSession struct {
	UserID         string     `json:"user_id" badgerhold:"key"`
	History        []ChatTurn `json:"history"`
	RecentSearches []string   `json:"recent_searches"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// MaxRecentSearches bounds the recent-searches list.
const MaxRecentSearches = 5

// MaxHistoryTurns bounds how many trailing turns are sent to the AI provider.
const MaxHistoryTurns = 10

// RecordSearch appends a symbol to the recent searches, moving it to the end
// if already present and trimming the list to MaxRecentSearches.
func (s *ChatSession) RecordSearch(symbol string) {
	out := make([]string, 0, len(s.RecentSearches)+1)
	for _, existing := range s.RecentSearches {
		if existing != symbol {
			out = append(out, existing)
		}
	}
	out = append(out, symbol)
	if len(out) > MaxRecentSearches {
		out = out[len(out)-MaxRecentSearches:]
	}
	s.RecentSearches = out
}

// AppendTurn adds a turn to the chat history.
func (s *ChatSession) AppendTurn(role, content string) {
	s.History = append(s.History, ChatTurn{Role: role, Content: content})
}

// TrailingHistory returns the last n turns of history.
func (s *ChatSession) TrailingHistory(n int) []ChatTurn {
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// ChatReply is the chatbot endpoint payload.
type ChatReply struct {
	Response string `json:"response"`
	Fallback bool   `json:"fallback,omitempty"`
}
