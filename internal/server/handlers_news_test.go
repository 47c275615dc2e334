package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portfolai/portfolai/internal/models"
)

func TestHandleNews_SymbolScoped(t *testing.T) {
	srv := newTestServer(t)
	var gotSymbol string
	srv.app.NewsService = &mockNewsService{
		getFunc: func(_ context.Context, symbol string, _ bool) (*models.NewsResult, error) {
			gotSymbol = symbol
			return &models.NewsResult{
				Articles:     []models.NewsArticle{{Title: "Apple news", Source: "Wire", Time: "2h ago", URL: "https://example.com"}},
				TotalResults: 1,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/news?symbol=AAPL", nil)
	rec := httptest.NewRecorder()
	srv.handleNews(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotSymbol != "AAPL" {
		t.Errorf("expected symbol AAPL passed through, got %q", gotSymbol)
	}
	resp := decodeBody(t, rec)
	articles := resp["articles"].([]interface{})
	if len(articles) != 1 {
		t.Errorf("expected 1 article, got %d", len(articles))
	}
}

func TestHandleNews_GeneralWithoutSymbol(t *testing.T) {
	srv := newTestServer(t)
	var gotSymbol string
	srv.app.NewsService = &mockNewsService{
		getFunc: func(_ context.Context, symbol string, _ bool) (*models.NewsResult, error) {
			gotSymbol = symbol
			return &models.NewsResult{Articles: []models.NewsArticle{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	rec := httptest.NewRecorder()
	srv.handleNews(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotSymbol != "" {
		t.Errorf("expected empty symbol for general news, got %q", gotSymbol)
	}
}

func TestHandleNews_Error(t *testing.T) {
	srv := newTestServer(t)
	srv.app.NewsService = &mockNewsService{
		getFunc: func(_ context.Context, _ string, _ bool) (*models.NewsResult, error) {
			return nil, fmt.Errorf("news pipeline down")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	rec := httptest.NewRecorder()
	srv.handleNews(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
