package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// searchDecision is the outcome of the two-stage "needs market context"
// check. Symbol is set only when Needed is true.
type searchDecision struct {
	Needed bool
	Symbol string
}

var (
	// tickerMention matches $SYMBOL mentions, optionally with a share class
	// or exchange suffix ($AAPL, $BRK.B, $BHP.AX).
	tickerMention = regexp.MustCompile(`\$([A-Za-z]{1,6}(?:\.[A-Za-z]{1,4})?)\b`)

	// bareTicker validates classifier replies.
	bareTicker = regexp.MustCompile(`^[A-Z]{1,6}(?:\.[A-Z]{1,4})?$`)
)

// decideSearch runs the deterministic $SYMBOL scan first and only falls back
// to the AI classifier when no usable mention is found.
func (s *Service) decideSearch(ctx context.Context, message string) searchDecision {
	if symbol, ok := detectTickerMention(message); ok {
		return searchDecision{Needed: true, Symbol: symbol}
	}
	return s.classifySearchNeed(ctx, message)
}

// detectTickerMention scans for $SYMBOL mentions and returns the first one
// that looks US-listed. A single-letter dot suffix is a US share class
// (BRK.B); longer suffixes are foreign listings and are skipped. Known
// limitation: .L London tickers are misclassified as US by this rule.
func detectTickerMention(message string) (string, bool) {
	for _, match := range tickerMention.FindAllStringSubmatch(message, -1) {
		symbol := strings.ToUpper(match[1])
		if isUSListed(symbol) {
			return symbol, true
		}
	}
	return "", false
}

func isUSListed(symbol string) bool {
	dot := strings.IndexByte(symbol, '.')
	if dot < 0 {
		return true
	}
	return len(symbol)-dot-1 == 1
}

// classifySearchNeed asks the AI provider whether the message needs market
// context. Classifier failures degrade to no search.
func (s *Service) classifySearchNeed(ctx context.Context, message string) searchDecision {
	if s.ai == nil {
		return searchDecision{}
	}
	reply, err := s.ai.GenerateContent(ctx, fmt.Sprintf(classifierPrompt, message))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Search classifier failed, skipping enrichment")
		return searchDecision{}
	}

	reply = strings.ToUpper(strings.TrimSpace(reply))
	if reply == "" || reply == "NONE" || reply == "NO" {
		return searchDecision{}
	}
	if !bareTicker.MatchString(reply) {
		return searchDecision{}
	}
	return searchDecision{Needed: true, Symbol: reply}
}
