package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/domain/model"
	"github.com/target/pulse-api/internal/ports"
)

// Failure classes surfaced to callers. Everything a collaborator can fail
// with is collapsed into one of these before crossing the boundary; raw
// store errors go to server-side logs only.
var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords, indistinguishably, to prevent account enumeration.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrDatabaseAccess indicates the account store rejected queries for
	// access-policy reasons; operators need to fix the deployment.
	ErrDatabaseAccess = errors.New("database access error")

	// ErrLoginFailed is the generic internal failure class for login.
	ErrLoginFailed = errors.New("login failed")

	// ErrInvalidSession is returned when a presented token does not resolve
	// to a live session.
	ErrInvalidSession = errors.New("invalid session")

	// ErrSessionUnavailable is returned when the session backend cannot be
	// consulted to verify a token. The token itself may still be valid, so
	// callers must not treat this as a rejection.
	ErrSessionUnavailable = errors.New("session verification unavailable")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Accounts    ports.AccountReader
	Teams       ports.TeamReader
	Credentials ports.CredentialVerifier
	Issuer      ports.TokenIssuer

	// SessionTTL is the lifetime applied to issued sessions.
	SessionTTL time.Duration

	Logger *slog.Logger

	// Now overrides the clock; tests use this. Defaults to time.Now.
	Now func() time.Time
}

// AuthService orchestrates credential verification, token issuance, and
// response assembly for login. It is strategy-agnostic: whichever TokenIssuer
// was selected at startup is the only session mechanism in play.
type AuthService struct {
	accounts    ports.AccountReader
	teams       ports.TeamReader
	credentials ports.CredentialVerifier
	issuer      ports.TokenIssuer
	sessionTTL  time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		accounts:    opts.Accounts,
		teams:       opts.Teams,
		credentials: opts.Credentials,
		issuer:      opts.Issuer,
		sessionTTL:  ttl,
		logger:      logger,
		now:         now,
	}
}

// LoginInput carries submitted credentials.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies the submitted credentials and, on success, issues a session
// token and assembles the full response payload. There is no partial success:
// either a complete AuthResult is returned or an error is.
//
// Failures are one of ErrInvalidCredentials, ErrDatabaseAccess, or
// ErrLoginFailed; collaborator errors never escape raw.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*model.AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrAccountNotFound) {
			// Same signal as a wrong password; do not reveal which.
			return nil, ErrInvalidCredentials
		}
		return nil, s.internalError(ctx, "account lookup failed", err)
	}

	if !s.credentials.Verify(acct.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	token, err := s.issuer.Issue(ctx, domainauth.Claims{
		UserID:    acct.ID,
		Role:      acct.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	})
	if err != nil {
		return nil, s.internalError(ctx, "token issuance failed", err)
	}

	// Enrichment is read-only but the response contract requires it:
	// a failure here fails the whole login (fail-closed).
	teams, err := s.teams.ListForAccount(ctx, acct.ID)
	if err != nil {
		// The token never reaches the client; revoke the just-issued
		// session so no server-side state dangles until TTL.
		if invErr := s.issuer.Invalidate(ctx, token); invErr != nil {
			s.logger.WarnContext(ctx, "failed to invalidate session after enrichment failure", "error", invErr)
		}
		return nil, s.internalError(ctx, "team lookup failed", err)
	}

	return &model.AuthResult{
		Token: token,
		User:  model.NewAuthUser(*acct, teams),
	}, nil
}

// Authenticate resolves a session token to its claims, for protecting
// subsequent requests. Safe for concurrent use.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domainauth.Claims, error) {
	if token == "" {
		return domainauth.Claims{}, ErrInvalidSession
	}

	claims, err := s.issuer.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidToken) {
			return domainauth.Claims{}, ErrInvalidSession
		}
		// Backend outage, not a bad token; report it as such.
		s.logger.ErrorContext(ctx, "token verification failed", "error", err)
		return domainauth.Claims{}, ErrSessionUnavailable
	}

	if claims.Expired(s.now()) {
		return domainauth.Claims{}, ErrInvalidSession
	}
	return claims, nil
}

// Logout revokes the session behind the token. A no-op for self-contained
// tokens, which expire on their own.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil // Nothing to log out
	}

	if err := s.issuer.Invalidate(ctx, token); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// internalError logs the full failure server-side and returns the sanitized
// class the caller is allowed to see.
func (s *AuthService) internalError(ctx context.Context, msg string, err error) error {
	s.logger.ErrorContext(ctx, msg, "error", err)

	if errors.Is(err, ports.ErrDatabaseAccess) {
		return ErrDatabaseAccess
	}
	return ErrLoginFailed
}
