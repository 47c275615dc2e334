package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portfolai/portfolai/internal/app"
	"github.com/portfolai/portfolai/internal/common"
	"github.com/portfolai/portfolai/internal/models"
)

// --- Service mocks ---

type mockStockService struct {
	getFunc func(ctx context.Context, symbol string, force bool) (*models.StockData, error)
}

func (m *mockStockService) GetStockData(ctx context.Context, symbol string, force bool) (*models.StockData, error) {
	return m.getFunc(ctx, symbol, force)
}

type mockMoversService struct {
	getFunc func(ctx context.Context, force bool) (*models.MarketMovers, error)
}

func (m *mockMoversService) GetMovers(ctx context.Context, force bool) (*models.MarketMovers, error) {
	return m.getFunc(ctx, force)
}

type mockNewsService struct {
	getFunc func(ctx context.Context, symbol string, force bool) (*models.NewsResult, error)
}

func (m *mockNewsService) GetNews(ctx context.Context, symbol string, force bool) (*models.NewsResult, error) {
	return m.getFunc(ctx, symbol, force)
}

type mockAnalysisService struct {
	analyzeFunc func(ctx context.Context, symbol string) (*models.AnalysisResult, error)
	chatFunc    func(ctx context.Context, userID, message string) (*models.ChatReply, error)
	clearFunc   func(ctx context.Context, userID string) error
}

func (m *mockAnalysisService) Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	return m.analyzeFunc(ctx, symbol)
}
func (m *mockAnalysisService) Chat(ctx context.Context, userID, message string) (*models.ChatReply, error) {
	return m.chatFunc(ctx, userID, message)
}
func (m *mockAnalysisService) ClearChat(ctx context.Context, userID string) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx, userID)
	}
	return nil
}

type mockWatchlistService struct {
	listFunc   func(ctx context.Context, userID string) ([]string, error)
	addFunc    func(ctx context.Context, userID, symbol string) (bool, error)
	removeFunc func(ctx context.Context, userID, symbol string) error
}

func (m *mockWatchlistService) List(ctx context.Context, userID string) ([]string, error) {
	return m.listFunc(ctx, userID)
}
func (m *mockWatchlistService) Add(ctx context.Context, userID, symbol string) (bool, error) {
	return m.addFunc(ctx, userID, symbol)
}
func (m *mockWatchlistService) Remove(ctx context.Context, userID, symbol string) error {
	return m.removeFunc(ctx, userID, symbol)
}

type mockUserStore struct {
	users map[string]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]*models.User{}}
}

func (m *mockUserStore) CreateUser(user *models.User) error {
	if _, ok := m.users[user.Username]; ok {
		return common.ErrUserExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStore) GetUserByUsername(username string) (*models.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, common.ErrUserNotFound
}

// newTestServer creates a server over a minimal app with mock services.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := common.NewSilentLogger()
	cfg := common.NewDefaultConfig()
	cfg.Auth.JWTSecret = "test-secret"

	a := &app.App{
		Config:    cfg,
		Logger:    logger,
		UserStore: newMockUserStore(),
	}
	return &Server{app: a, logger: logger}
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return bytes.NewBuffer(data)
}

// authedRequest attaches a user context the way bearerTokenMiddleware would.
func authedRequest(req *http.Request, userID string) *http.Request {
	uc := &common.UserContext{UserID: userID, Username: "tester"}
	return req.WithContext(common.WithUserContext(req.Context(), uc))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp
}

// --- Helper tests ---

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
	rec := httptest.NewRecorder()

	if RequireMethod(rec, req, http.MethodGet) {
		t.Error("POST should not satisfy a GET requirement")
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET" {
		t.Errorf("expected Allow: GET, got %q", allow)
	}
}

func TestRequireMethod_MultipleAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodHead, "/api/health", nil)
	rec := httptest.NewRecorder()

	if !RequireMethod(rec, req, http.MethodGet, http.MethodHead) {
		t.Error("HEAD should be accepted")
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/test", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()

	var v map[string]string
	if DecodeJSON(rec, req, &v) {
		t.Error("broken JSON should fail decoding")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestBoolParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/test?force_refresh=TRUE&other=1", nil)
	if !boolParam(req, "force_refresh") {
		t.Error("TRUE should parse as true")
	}
	if boolParam(req, "other") {
		t.Error("non-true values should parse as false")
	}
	if boolParam(req, "missing") {
		t.Error("missing param should parse as false")
	}
}
