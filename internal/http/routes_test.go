package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/domain/model"
	"github.com/target/pulse-api/internal/service"
)

// routerFixture wires a full router against an in-memory auth service stub
// that issues one token for one known credential pair.
func routerFixture(t *testing.T) http.Handler {
	t.Helper()

	claims := domainauth.Claims{
		UserID:    "acct-1",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	svc := &fakeAuthService{
		LoginFunc: func(_ context.Context, input service.LoginInput) (*model.AuthResult, error) {
			if input.Username != "alice" || input.Password != "correct-pw" {
				return nil, service.ErrInvalidCredentials
			}
			acct := model.Account{ID: "acct-1", Username: "alice", Role: domainauth.RoleUser}
			return &model.AuthResult{Token: "token-123", User: model.NewAuthUser(acct, nil)}, nil
		},
		AuthenticateFunc: func(_ context.Context, token string) (domainauth.Claims, error) {
			if token != "token-123" {
				return domainauth.Claims{}, service.ErrInvalidSession
			}
			return claims, nil
		},
	}
	return NewRouter(RouterServices{Auth: svc, Logger: discardLogger()})
}

func TestRouter_LoginThenMe(t *testing.T) {
	router := routerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", loginBody(t, "alice", "correct-pw"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.Equal(t, "token-123", login.Token)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"acct-1"`)
}

func TestRouter_LoginRejectsGet(t *testing.T) {
	router := routerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_MeWithoutToken(t *testing.T) {
	router := routerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	router := routerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodHead, "/healthz", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
