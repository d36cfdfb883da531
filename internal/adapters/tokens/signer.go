package tokens

// Package tokens provides the self-contained session strategy: signed tokens
// carrying their claims, verified by signature and expiry alone with no store
// access. It is the fallback when no session cache is configured.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/ports"
)

// Config holds signing configuration. Loaded once at startup; treated as
// immutable afterwards.
type Config struct {
	// Secret is the HS256 signing key. Required.
	Secret string

	// KeyID is an optional key identifier stamped into issued tokens.
	KeyID string

	// VerifySecrets holds additional verify-only secrets by key ID.
	// During rotation, tokens signed with a previous key keep verifying
	// until they expire.
	VerifySecrets map[string]string

	// Issuer is the issuer claim stamped into tokens and enforced on verify.
	Issuer string

	// Leeway tolerates small clock skew when validating time claims.
	Leeway time.Duration
}

// Signer signs and verifies self-contained session tokens.
// Verification is a pure function of (token, keys) and is safe for
// concurrent use.
type Signer struct {
	cfg Config
}

var _ ports.TokenIssuer = (*Signer)(nil)

// sessionClaims is the wire shape of a signed session token.
type sessionClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewSigner validates the configuration and returns a Signer.
func NewSigner(cfg Config) (*Signer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	if cfg.Leeway < 0 {
		return nil, errors.New("leeway cannot be negative")
	}
	cfg.KeyID = strings.TrimSpace(cfg.KeyID)
	for kid, secret := range cfg.VerifySecrets {
		if strings.TrimSpace(kid) == "" {
			return nil, errors.New("verify secret map contains empty key ID")
		}
		if secret == "" {
			return nil, fmt.Errorf("verify secret for key ID %q is empty", kid)
		}
	}
	if len(cfg.VerifySecrets) > 0 {
		// Verification demands a kid once a verify-key set is in force, so a
		// kid-less signer would reject every token it issues.
		if cfg.KeyID == "" {
			return nil, errors.New("KeyID is required when VerifySecrets is set")
		}
		if _, ok := cfg.VerifySecrets[cfg.KeyID]; !ok {
			return nil, errors.New("KeyID is not present in VerifySecrets")
		}
	}

	return &Signer{cfg: cfg}, nil
}

// Issue signs a token embedding the given claims. The claims must carry an
// expiry: unexpirable session tokens are not issued.
func (s *Signer) Issue(_ context.Context, claims domainauth.Claims) (string, error) {
	if claims.UserID == "" {
		return "", errors.New("claims user ID cannot be empty")
	}
	if claims.ExpiresAt.IsZero() {
		return "", errors.New("claims expiry is required")
	}

	issuedAt := claims.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	jwtClaims := sessionClaims{
		UserID: claims.UserID,
		Role:   string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	if s.cfg.KeyID != "" {
		token.Header["kid"] = s.cfg.KeyID
	}

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token and returns its claims.
// Invalid signatures, malformed tokens, wrong algorithms, and expired
// timestamps all report ports.ErrInvalidToken without distinction.
func (s *Signer) Verify(_ context.Context, token string) (domainauth.Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.cfg.Leeway > 0 {
		options = append(options, jwt.WithLeeway(s.cfg.Leeway))
	}
	if s.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.cfg.Issuer))
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(token, &sessionClaims{}, s.selectKey)
	if err != nil {
		return domainauth.Claims{}, ports.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return domainauth.Claims{}, ports.ErrInvalidToken
	}

	out := domainauth.Claims{
		UserID: claims.UserID,
		Role:   domainauth.Role(claims.Role),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Invalidate is a no-op: self-contained tokens carry no server-side state and
// remain valid until expiry.
func (s *Signer) Invalidate(_ context.Context, _ string) error {
	return nil
}

// selectKey resolves the verification key for a parsed token header.
func (s *Signer) selectKey(t *jwt.Token) (any, error) {
	if len(s.cfg.VerifySecrets) > 0 {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid")
		}
		secret, ok := s.cfg.VerifySecrets[kid]
		if !ok {
			return nil, errors.New("unknown kid")
		}
		return []byte(secret), nil
	}

	return []byte(s.cfg.Secret), nil
}
