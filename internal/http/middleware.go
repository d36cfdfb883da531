package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that requires a valid bearer token.
// Resolved claims are placed in the request context for downstream handlers.
func RequireAuth(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := authenticateRequest(r, authSvc)
			if err != nil {
				writeAuthFailure(w, err)
				return
			}

			ctx := SetClaimsInContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns a middleware that requires an authenticated admin.
func RequireAdmin(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := authenticateRequest(r, authSvc)
			if err != nil {
				writeAuthFailure(w, err)
				return
			}

			if !claims.Role.IsAdmin() {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient-permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			ctx := SetClaimsInContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticateRequest resolves the bearer token on the request to its claims.
func authenticateRequest(r *http.Request, authSvc AuthServiceInterface) (domainauth.Claims, error) {
	token := bearerToken(r)
	if token == "" {
		return domainauth.Claims{}, service.ErrInvalidSession
	}

	return authSvc.Authenticate(r.Context(), token)
}

// writeAuthFailure distinguishes a rejected token from a session backend the
// service could not reach. Only the former is the caller's fault.
func writeAuthFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrSessionUnavailable) {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: errCodeSessionUnavailable,
			Err:     service.ErrSessionUnavailable,
		})
		return
	}

	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: errCodeUnauthorized,
		Err:     errors.New("authentication required"),
	})
}
