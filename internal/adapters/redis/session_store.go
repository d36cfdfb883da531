package redis

// Package redis provides the Redis-backed session strategy: opaque tokens
// mapped to server-side session state with TTL semantics.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/ports"
)

// SessionStore is a Redis-based session store for production use.
// It implements ports.TokenIssuer with opaque tokens; TTLs are derived from
// session ExpiresAt so Redis expires entries on its own.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.TokenIssuer = (*SessionStore)(nil)

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
	}
}

// ErrNotFound is returned when a session is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}

// Issue creates an opaque session token and persists the session state.
func (s *SessionStore) Issue(ctx context.Context, claims domainauth.Claims) (string, error) {
	if claims.UserID == "" {
		return "", errors.New("claims user ID cannot be empty")
	}

	sess := domainauth.Session{
		// UUID session IDs are URL-safe and have good entropy.
		ID:        uuid.New().String(),
		UserID:    claims.UserID,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}

	if err := s.save(ctx, sess); err != nil {
		return "", err
	}
	return sess.ID, nil
}

// Verify resolves an opaque token to its claims via store lookup.
// Unknown, expired, and malformed tokens all report ports.ErrInvalidToken.
func (s *SessionStore) Verify(ctx context.Context, token string) (domainauth.Claims, error) {
	sess, err := s.get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domainauth.Claims{}, ports.ErrInvalidToken
		}
		return domainauth.Claims{}, err
	}
	return sess.Claims(), nil
}

// Invalidate deletes the server-side session so subsequent lookups fail.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil // Nothing to delete
	}

	key := s.prefix + token
	return s.client.Del(ctx, key).Err()
}

func (s *SessionStore) save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := s.prefix + sess.ID
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		// Session is already expired, don't save it
		return errors.New("session is expired")
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *SessionStore) get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Double-check expiration (Redis TTL should handle this, but be defensive)
	if time.Now().After(sess.ExpiresAt) {
		// Clean up expired session; if cleanup fails bubble the error up.
		if deleteErr := s.Invalidate(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}
