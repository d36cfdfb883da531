package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenIssuer        = (*MemoryTokenIssuer)(nil)
	_ ports.CredentialVerifier = PlainVerifier{}
)

// MemoryTokenIssuer is an in-memory opaque-token session store for tests.
// Safe for concurrent use.
type MemoryTokenIssuer struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Claims
	seq      int

	// Error overrides for failure-path tests.
	IssueErr      error
	VerifyErr     error
	InvalidateErr error
}

// NewMemoryTokenIssuer creates an empty in-memory issuer.
func NewMemoryTokenIssuer() *MemoryTokenIssuer {
	return &MemoryTokenIssuer{sessions: make(map[string]domainauth.Claims)}
}

// Issue stores the claims under a deterministic opaque token.
func (m *MemoryTokenIssuer) Issue(_ context.Context, claims domainauth.Claims) (string, error) {
	if m.IssueErr != nil {
		return "", m.IssueErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	token := fmt.Sprintf("mem-token-%d", m.seq)
	m.sessions[token] = claims
	return token, nil
}

// Verify resolves a previously issued token.
func (m *MemoryTokenIssuer) Verify(_ context.Context, token string) (domainauth.Claims, error) {
	if m.VerifyErr != nil {
		return domainauth.Claims{}, m.VerifyErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	claims, ok := m.sessions[token]
	if !ok {
		return domainauth.Claims{}, ports.ErrInvalidToken
	}
	return claims, nil
}

// Invalidate removes a token.
func (m *MemoryTokenIssuer) Invalidate(_ context.Context, token string) error {
	if m.InvalidateErr != nil {
		return m.InvalidateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// Len reports the number of live sessions.
func (m *MemoryTokenIssuer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// PlainVerifier matches a stored hash of the form produced by PlainHash.
// It keeps unit tests free of bcrypt cost without changing call shapes.
type PlainVerifier struct{}

// Verify reports whether storedHash equals PlainHash(secret).
func (PlainVerifier) Verify(storedHash, secret string) bool {
	expected := PlainHash(secret)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(expected)) == 1
}

// PlainHash produces the fake stored-hash form for a secret.
func PlainHash(secret string) string {
	return "hashed:" + secret
}
