package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/domain/model"
	"github.com/target/pulse-api/internal/service"
)

// fakeAuthService is a function-backed AuthServiceInterface stub.
type fakeAuthService struct {
	LoginFunc        func(ctx context.Context, input service.LoginInput) (*model.AuthResult, error)
	AuthenticateFunc func(ctx context.Context, token string) (domainauth.Claims, error)
	LogoutFunc       func(ctx context.Context, token string) error
}

func (f *fakeAuthService) Login(ctx context.Context, input service.LoginInput) (*model.AuthResult, error) {
	if f.LoginFunc == nil {
		return nil, service.ErrLoginFailed
	}
	return f.LoginFunc(ctx, input)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (domainauth.Claims, error) {
	if f.AuthenticateFunc == nil {
		return domainauth.Claims{}, service.ErrInvalidSession
	}
	return f.AuthenticateFunc(ctx, token)
}

func (f *fakeAuthService) Logout(ctx context.Context, token string) error {
	if f.LogoutFunc == nil {
		return nil
	}
	return f.LogoutFunc(ctx, token)
}

func loginBody(t *testing.T, username, password string) *strings.Reader {
	t.Helper()
	b, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)
	return strings.NewReader(string(b))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoginHandler_Success(t *testing.T) {
	svc := &fakeAuthService{
		LoginFunc: func(_ context.Context, input service.LoginInput) (*model.AuthResult, error) {
			assert.Equal(t, "alice", input.Username)
			assert.Equal(t, "correct-pw", input.Password)
			acct := model.Account{
				ID:        "acct-1",
				Username:  "alice",
				Role:      domainauth.RoleAdmin,
				CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			}
			return &model.AuthResult{
				Token: "token-123",
				User:  model.NewAuthUser(acct, []model.Team{{ID: "team-1", Name: "Analytics"}}),
			}, nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", loginBody(t, "alice", "correct-pw"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "token-123", body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, true, user["isAdmin"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	svc := &fakeAuthService{
		LoginFunc: func(context.Context, service.LoginInput) (*model.AuthResult, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", loginBody(t, "alice", "wrong"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "incorrect-username-password", body["error"])
}

func TestLoginHandler_DatabaseAccessError(t *testing.T) {
	svc := &fakeAuthService{
		LoginFunc: func(context.Context, service.LoginInput) (*model.AuthResult, error) {
			return nil, service.ErrDatabaseAccess
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", loginBody(t, "alice", "correct-pw"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "database-access-error", body["error"])
}

func TestLoginHandler_GenericFailureNeverLeaksDetail(t *testing.T) {
	svc := &fakeAuthService{
		LoginFunc: func(context.Context, service.LoginInput) (*model.AuthResult, error) {
			return nil, errors.New("dial tcp 10.0.0.3:5432: connection refused")
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", loginBody(t, "alice", "correct-pw"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "login-error", body["error"])
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestLoginHandler_MalformedJSON(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username": `))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "invalid-json", body["error"])
}

func TestLogoutHandler(t *testing.T) {
	var gotToken string
	svc := &fakeAuthService{
		LogoutFunc: func(_ context.Context, token string) error {
			gotToken = token
			return nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-123", gotToken)
}

func TestLogoutHandler_RevocationFailureStillOK(t *testing.T) {
	svc := &fakeAuthService{
		LogoutFunc: func(context.Context, string) error {
			return errors.New("redis unavailable")
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis")
}

func TestMeHandler(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	claims := domainauth.Claims{UserID: "acct-1", Role: domainauth.RoleAdmin}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(SetClaimsInContext(req.Context(), claims))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "acct-1", body["id"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, true, body["isAdmin"])
}

func TestMeHandler_NoClaims(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "standard", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, bearerToken(req))
		})
	}
}
