package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairly/internal/auth"
	"github.com/mmynk/fairly/internal/middleware"
	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/service"
	"github.com/mmynk/fairly/internal/storage"
)

type fakeBalances struct {
	summaries map[string]*models.GroupBalanceSummary
	err       error
	gotUser   string
}

func (f *fakeBalances) Balances(ctx context.Context, groupID, userID string) (*models.GroupBalanceSummary, error) {
	f.gotUser = userID
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.summaries[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return s, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func dinnerSummary() *models.GroupBalanceSummary {
	return &models.GroupBalanceSummary{
		GroupID:   "g1",
		GroupName: "Dinner",
		UserBalances: []models.UserBalance{
			{UserID: "a", UserName: "Alice", Balance: decimal.RequireFromString("20")},
			{UserID: "b", UserName: "Bob", Balance: decimal.RequireFromString("-10")},
			{UserID: "c", UserName: "Charlie", Balance: decimal.RequireFromString("-10")},
		},
		SuggestedSettlements: []models.SuggestedSettlement{
			{FromUserID: "b", FromUserName: "Bob", ToUserID: "a", ToUserName: "Alice", Amount: decimal.RequireFromString("10")},
			{FromUserID: "c", FromUserName: "Charlie", ToUserID: "a", ToUserName: "Alice", Amount: decimal.RequireFromString("10")},
		},
	}
}

func newServer(t *testing.T, balances BalanceSource, db Pinger) (*httptest.Server, string) {
	t.Helper()
	jwtManager := auth.NewJWTManager(strings.Repeat("h", 32), time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "a", Email: "alice@example.com"})
	require.NoError(t, err)

	mux := http.NewServeMux()
	New(balances, db, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(mux, middleware.RequireAuthHTTP(jwtManager))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, token
}

func get(t *testing.T, url, token string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestGroupBalances(t *testing.T) {
	balances := &fakeBalances{summaries: map[string]*models.GroupBalanceSummary{"g1": dinnerSummary()}}
	srv, token := newServer(t, balances, nil)

	resp, body := get(t, srv.URL+"/groups/g1/balances", token)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "a", balances.gotUser)

	assert.JSONEq(t, `{
		"groupId": "g1",
		"groupName": "Dinner",
		"userBalances": [
			{"userId": "a", "userName": "Alice", "balance": 20.00},
			{"userId": "b", "userName": "Bob", "balance": -10.00},
			{"userId": "c", "userName": "Charlie", "balance": -10.00}
		],
		"suggestedSettlements": [
			{"fromUserId": "b", "fromUserName": "Bob", "toUserId": "a", "toUserName": "Alice", "amount": 10.00},
			{"fromUserId": "c", "fromUserName": "Charlie", "toUserId": "a", "toUserName": "Alice", "amount": 10.00}
		]
	}`, body)
	assert.Contains(t, body, `"balance":20.00`, "amounts keep two fractional digits")
	assert.Contains(t, body, `"amount":10.00`)
}

func TestGroupBalances_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		noToken    bool
		wantStatus int
		wantBody   string
	}{
		{name: "unknown group", path: "/groups/missing/balances", wantStatus: http.StatusNotFound, wantBody: "not found"},
		{name: "not a member", path: "/groups/g1/balances", err: service.ErrNotMember, wantStatus: http.StatusForbidden},
		{name: "no token", path: "/groups/g1/balances", noToken: true, wantStatus: http.StatusUnauthorized},
		{name: "storage failure", path: "/groups/g1/balances", err: errors.New("database is locked"), wantStatus: http.StatusInternalServerError, wantBody: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := &fakeBalances{summaries: map[string]*models.GroupBalanceSummary{"g1": dinnerSummary()}, err: tt.err}
			srv, token := newServer(t, balances, nil)
			if tt.noToken {
				token = ""
			}

			resp, body := get(t, srv.URL+tt.path, token)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				var e errorResponse
				require.NoError(t, json.Unmarshal([]byte(body), &e))
				assert.Equal(t, "error", e.Status)
				assert.Contains(t, e.Message, tt.wantBody)
				assert.NotContains(t, e.Message, "locked")
			}
		})
	}
}

func TestGroupBalances_MethodNotAllowed(t *testing.T) {
	srv, token := newServer(t, &fakeBalances{}, nil)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/groups/g1/balances", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv, _ := newServer(t, &fakeBalances{}, fakePinger{})
	resp, body := get(t, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	down, _ := newServer(t, &fakeBalances{}, fakePinger{err: errors.New("closed")})
	resp, _ = get(t, down.URL+"/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
