package models

import (
	"reflect"
	"testing"
)

func TestRecordSearch_AppendsNewestLast(t *testing.T) {
	s := &ChatSession{UserID: "u1"}

	s.RecordSearch("AAPL")
	s.RecordSearch("MSFT")

	want := []string{"AAPL", "MSFT"}
	if !reflect.DeepEqual(s.RecentSearches, want) {
		t.Errorf("expected %v, got %v", want, s.RecentSearches)
	}
}

func TestRecordSearch_TrimsToFive(t *testing.T) {
	s := &ChatSession{UserID: "u1"}

	for _, sym := range []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA"} {
		s.RecordSearch(sym)
	}

	want := []string{"MSFT", "GOOGL", "AMZN", "TSLA", "NVDA"}
	if !reflect.DeepEqual(s.RecentSearches, want) {
		t.Errorf("expected oldest entry dropped, got %v", s.RecentSearches)
	}
}

func TestRecordSearch_RepeatMovesToEnd(t *testing.T) {
	s := &ChatSession{UserID: "u1"}

	for _, sym := range []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA"} {
		s.RecordSearch(sym)
	}
	s.RecordSearch("MSFT")

	want := []string{"AAPL", "GOOGL", "AMZN", "TSLA", "MSFT"}
	if !reflect.DeepEqual(s.RecentSearches, want) {
		t.Errorf("expected repeat moved to end without eviction, got %v", s.RecentSearches)
	}
	if len(s.RecentSearches) != MaxRecentSearches {
		t.Errorf("expected %d entries, got %d", MaxRecentSearches, len(s.RecentSearches))
	}
}

func TestAppendTurn(t *testing.T) {
	s := &ChatSession{UserID: "u1"}

	s.AppendTurn("user", "hello")
	s.AppendTurn("assistant", "hi there")

	if len(s.History) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(s.History))
	}
	if s.History[0].Role != "user" || s.History[0].Content != "hello" {
		t.Errorf("unexpected first turn: %+v", s.History[0])
	}
	if s.History[1].Role != "assistant" || s.History[1].Content != "hi there" {
		t.Errorf("unexpected second turn: %+v", s.History[1])
	}
}

func TestTrailingHistory(t *testing.T) {
	s := &ChatSession{UserID: "u1"}
	for i := 0; i < 14; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		s.AppendTurn(role, string(rune('a'+i)))
	}

	trailing := s.TrailingHistory(MaxHistoryTurns)
	if len(trailing) != MaxHistoryTurns {
		t.Fatalf("expected %d turns, got %d", MaxHistoryTurns, len(trailing))
	}
	if trailing[0].Content != "e" {
		t.Errorf("expected trailing history to start at the 5th turn, got %q", trailing[0].Content)
	}
	if trailing[len(trailing)-1].Content != "n" {
		t.Errorf("expected trailing history to end at the newest turn, got %q", trailing[len(trailing)-1].Content)
	}
}

func TestTrailingHistory_ShorterThanLimit(t *testing.T) {
	s := &ChatSession{UserID: "u1"}
	s.AppendTurn("user", "only one")

	trailing := s.TrailingHistory(MaxHistoryTurns)
	if len(trailing) != 1 {
		t.Errorf("expected full short history, got %d turns", len(trailing))
	}
}
