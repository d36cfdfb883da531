package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Auth   AuthServiceInterface
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router for the auth API.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: logger}
	requireAuth := RequireAuth(services.Auth)

	mux.Handle("POST /api/auth/login", http.HandlerFunc(authHandlers.Login))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandlers.Me)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
