package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/domain/model"
	"github.com/target/pulse-api/internal/service"
)

// Error codes surfaced to API clients. Dashboards key their messaging off
// these strings, so they are part of the wire contract.
const (
	errCodeBadCredentials     = "incorrect-username-password"
	errCodeDatabase           = "database-access-error"
	errCodeLogin              = "login-error"
	errCodeUnauthorized       = "authentication-required"
	errCodeSessionUnavailable = "session-unavailable"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, input service.LoginInput) (*model.AuthResult, error)
	Authenticate(ctx context.Context, token string) (domainauth.Claims, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc    AuthServiceInterface
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest carries the submitted credential pair.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles the credential login endpoint.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.writeLoginError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// writeLoginError maps service failure classes onto the wire contract. The
// service has already sanitized these; anything unexpected still collapses to
// the generic login error rather than leaking outward.
func (h *AuthHandlers) writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: errCodeBadCredentials,
			Err:     service.ErrInvalidCredentials,
		})
	case errors.Is(err, service.ErrDatabaseAccess):
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: errCodeDatabase,
			Err:     service.ErrDatabaseAccess,
		})
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: errCodeLogin,
			Err:     service.ErrLoginFailed,
		})
	}
}

// Logout revokes the presented session token.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if err := h.Svc.Logout(r.Context(), token); err != nil {
		// Revocation failure is logged but the client still ends its session.
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me returns the identity behind the authenticated request.
// GET /api/auth/me (behind RequireAuth).
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: errCodeUnauthorized,
			Err:     errors.New("authentication required"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"id":      claims.UserID,
		"role":    claims.Role,
		"isAdmin": claims.Role.IsAdmin(),
	})
}

// bearerToken extracts the token from the Authorization header, or returns ""
// when the header is absent or not a bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
