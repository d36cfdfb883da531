package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration
// in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/domain/model"
)

var (
	// ErrInvalidToken is returned by TokenIssuer.Verify when a token is unknown,
	// malformed, tampered with, or expired. Callers must not learn which.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrAccountNotFound is returned by AccountReader when no account matches.
	// The service layer collapses it into the same failure as a wrong password.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDatabaseAccess is returned when the store rejects a query for
	// access-policy reasons (row-level security, revoked privileges) rather
	// than the data being absent. A deployment misconfiguration, not a data
	// condition.
	ErrDatabaseAccess = errors.New("database access denied")
)

// AccountReader looks up stored accounts. The returned account includes the
// password hash; callers own keeping it out of responses and logs.
type AccountReader interface {
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
}

// TeamReader lists team memberships for the login response payload.
type TeamReader interface {
	ListForAccount(ctx context.Context, accountID string) ([]model.Team, error)
}

// CredentialVerifier checks a submitted secret against a stored hash.
// Implementations must be resistant to timing side-channels and must never
// log either input. Failure is a plain false, not an error.
type CredentialVerifier interface {
	Verify(storedHash, secret string) bool
}

// TokenIssuer is the session strategy: one of two implementations is selected
// once at startup (server-side opaque sessions when the cache is reachable,
// self-contained signed tokens otherwise). Callers never branch on which.
type TokenIssuer interface {
	// Issue creates a token for the given claims.
	Issue(ctx context.Context, claims domainauth.Claims) (string, error)

	// Verify resolves a token back to its claims, or ErrInvalidToken.
	// Safe for concurrent use.
	Verify(ctx context.Context, token string) (domainauth.Claims, error)

	// Invalidate revokes a token. A no-op for stateless tokens.
	Invalidate(ctx context.Context, token string) error
}
