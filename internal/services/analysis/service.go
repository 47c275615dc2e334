// Package analysis provides AI-powered stock analysis and the chatbot
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/interfaces"
	"github.com/portfolai/portfolai/internal/models"
)

// Compile-time interface check
var _ interfaces.AnalysisService = (*Service)(nil)

// Service implements AnalysisService. The AI, market data and news clients
// are all optional; each absence degrades independently.
type Service struct {
	ai        interfaces.AIClient
	market    interfaces.MarketDataClient
	news      interfaces.NewsClient
	sessions  interfaces.SessionStore
	watchlist interfaces.WatchlistStore
	logger    *common.Logger
	now       func() time.Time
}

// NewService creates a new analysis service
func NewService(
	ai interfaces.AIClient,
	market interfaces.MarketDataClient,
	news interfaces.NewsClient,
	sessions interfaces.SessionStore,
	watchlist interfaces.WatchlistStore,
	logger *common.Logger,
) *Service {
	return &Service{
		ai:        ai,
		market:    market,
		news:      news,
		sessions:  sessions,
		watchlist: watchlist,
		logger:    logger,
		now:       time.Now,
	}
}

// Analyze generates a one-shot AI analysis for a symbol. Context gathering
// is best-effort; only the completion call itself can fail the operation.
func (s *Service) Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, common.ErrEmptySymbol
	}

	if s.ai == nil {
		return &models.AnalysisResult{
			Symbol:    symbol,
			Analysis:  fmt.Sprintf(fallbackAnalysis, symbol),
			Timestamp: s.now(),
			Fallback:  true,
		}, nil
	}

	prompt := fmt.Sprintf(analysisPrompt, symbol, s.quoteContext(ctx, symbol), symbol)
	prompt += s.newsContext(ctx, symbol)
	prompt += s.companyContext(ctx, symbol)

	text, err := s.ai.Chat(ctx, systemPrompt, nil, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("symbol", symbol).Msg("AI analysis failed")
		return nil, fmt.Errorf("failed to generate analysis for %s: %w", symbol, err)
	}

	return &models.AnalysisResult{
		Symbol:    symbol,
		Analysis:  text,
		Timestamp: s.now(),
	}, nil
}

// Chat generates a conversational reply, updating the user's session
// history. Provider failures produce an HTTP-200 fallback reply rather than
// an error; only the empty-message case is rejected.
func (s *Service) Chat(ctx context.Context, userID, message string) (*models.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, common.ErrEmptyMessage
	}

	if s.ai == nil {
		return &models.ChatReply{
			Response: "(Fallback) You said: " + message,
			Fallback: true,
		}, nil
	}

	session, err := s.sessions.GetSession(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat session: %w", err)
	}

	system := s.buildSystemPrompt(ctx, userID, session)

	enriched := message
	if decision := s.decideSearch(ctx, message); decision.Needed {
		s.logger.Debug().Str("symbol", decision.Symbol).Msg("Enriching chat message with news context")
		enriched += s.newsContext(ctx, decision.Symbol)
	}

	history := session.TrailingHistory(models.MaxHistoryTurns)

	reply, err := s.ai.Chat(ctx, system, history, enriched)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("AI chat failed")
		session.AppendTurn("user", message)
		if saveErr := s.sessions.SaveSession(session); saveErr != nil {
			s.logger.Warn().Err(saveErr).Str("user_id", userID).Msg("Could not save chat session")
		}
		return &models.ChatReply{
			Response: fmt.Sprintf("(Fallback) The AI service is unavailable right now (%v). You said: %s", err, message),
			Fallback: true,
		}, nil
	}

	session.AppendTurn("user", message)
	session.AppendTurn("assistant", reply)
	if err := s.sessions.SaveSession(session); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Could not save chat session")
	}

	return &models.ChatReply{Response: reply}, nil
}

// ClearChat empties the user's chat history. Recent searches are preserved.
func (s *Service) ClearChat(_ context.Context, userID string) error {
	session, err := s.sessions.GetSession(userID)
	if err != nil {
		return fmt.Errorf("failed to load chat session: %w", err)
	}
	session.History = nil
	if err := s.sessions.SaveSession(session); err != nil {
		return fmt.Errorf("failed to clear chat session: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Msg("Chat history cleared")
	return nil
}

// buildSystemPrompt extends the persona prompt with the user's watchlist and
// recent searches. An empty watchlist gets an explicit notice; recent
// searches are omitted entirely when there are none.
func (s *Service) buildSystemPrompt(_ context.Context, userID string, session *models.ChatSession) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)

	symbols := s.watchlistSymbols(userID)
	if len(symbols) > 0 {
		sb.WriteString("\n\nThe user's watchlist: ")
		sb.WriteString(strings.Join(symbols, ", "))
		sb.WriteString(".")
	} else {
		sb.WriteString("\n\nThe user's watchlist is empty.")
	}

	if len(session.RecentSearches) > 0 {
		sb.WriteString("\nSymbols the user recently searched: ")
		sb.WriteString(strings.Join(session.RecentSearches, ", "))
		sb.WriteString(".")
	}

	return sb.String()
}

func (s *Service) watchlistSymbols(userID string) []string {
	if s.watchlist == nil || userID == "" {
		return nil
	}
	items, err := s.watchlist.List(userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Could not load watchlist for chat context")
		return nil
	}
	symbols := make([]string, len(items))
	for i, item := range items {
		symbols[i] = item.Symbol
	}
	return symbols
}

// quoteContext formats the current quote for the analysis prompt.
func (s *Service) quoteContext(ctx context.Context, symbol string) string {
	context := "Analyze the stock " + symbol
	if s.market == nil {
		return context
	}

	quote, err := s.market.GetQuote(ctx, symbol)
	if err != nil || quote == nil || quote.Current == 0 {
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Could not fetch quote for analysis context")
		}
		return context
	}

	change := quote.Current - quote.PreviousClose
	changePercent := 0.0
	if quote.PreviousClose != 0 {
		changePercent = change / quote.PreviousClose * 100
	}
	return context + fmt.Sprintf(
		" with current price $%.2f, change %.2f (%.2f%%), volume %d, high $%.2f, low $%.2f, open $%.2f",
		quote.Current, change, changePercent, quote.Volume, quote.High, quote.Low, quote.Open,
	)
}

// newsContext fetches up to 3 recent headlines for the symbol, formatted as
// a prompt section. Failures yield an empty string.
func (s *Service) newsContext(ctx context.Context, symbol string) string {
	if s.news == nil {
		return ""
	}

	from := s.now().AddDate(0, 0, -7).Format("2006-01-02")
	resp, err := s.news.GetEverything(ctx, symbol+" stock", from, "", "publishedAt", 5)
	if err != nil || resp == nil || len(resp.Articles) == 0 {
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Could not fetch news for analysis context")
		}
		return ""
	}

	var lines []string
	for _, article := range resp.Articles {
		if article.Title == "" || article.PublishedAt == "" {
			continue
		}
		date := article.PublishedAt
		if len(date) > 10 {
			date = date[:10]
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", article.Title, date))
		if len(lines) == 3 {
			break
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return fmt.Sprintf("\n\n**Recent News about %s:**\n%s", symbol, strings.Join(lines, "\n"))
}

// companyContext formats the company profile for the analysis prompt.
func (s *Service) companyContext(ctx context.Context, symbol string) string {
	if s.market == nil {
		return ""
	}

	profile, err := s.market.GetCompanyProfile(ctx, symbol)
	if err != nil || profile == nil {
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Could not fetch company profile for analysis context")
		}
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\n**Company Information:**\n")
	if profile.Name != "" {
		fmt.Fprintf(&sb, "- Company: %s\n", profile.Name)
	}
	if profile.Exchange != "" {
		fmt.Fprintf(&sb, "- Exchange: %s\n", profile.Exchange)
	}
	if profile.Industry != "" {
		fmt.Fprintf(&sb, "- Industry: %s\n", profile.Industry)
	}
	if profile.MarketCapitalization != 0 {
		fmt.Fprintf(&sb, "- Market Cap: $%.0fM\n", profile.MarketCapitalization)
	}
	return sb.String()
}
