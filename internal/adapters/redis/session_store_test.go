package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/ports"
)

// setupTestRedis starts an in-process miniredis and returns a client bound to it.
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testClaims() domainauth.Claims {
	now := time.Now()
	return domainauth.Claims{
		UserID:    "user-123",
		Role:      domainauth.RoleUser,
		IssuedAt:  now,
		ExpiresAt: now.Add(30 * time.Minute),
	}
}

func TestSessionStore_IssueAndVerify(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	claims := testClaims()
	token, err := store.Issue(ctx, claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, got.UserID)
	assert.Equal(t, claims.Role, got.Role)
	assert.WithinDuration(t, claims.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestSessionStore_TokenIsOpaque(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	token, err := store.Issue(ctx, testClaims())
	require.NoError(t, err)

	// An opaque token carries no embedded claims; two issues for the same
	// claims must produce distinct tokens.
	token2, err := store.Issue(ctx, testClaims())
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
	assert.NotContains(t, token, "user-123")
}

func TestSessionStore_VerifyUnknownToken(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.Verify(context.Background(), "non-existent")
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestSessionStore_VerifyEmptyToken(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestSessionStore_Invalidate(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	token, err := store.Issue(ctx, testClaims())
	require.NoError(t, err)

	_, err = store.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, store.Invalidate(ctx, token))

	_, err = store.Verify(ctx, token)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestSessionStore_InvalidateEmptyToken(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)

	assert.NoError(t, store.Invalidate(context.Background(), ""))
}

func TestSessionStore_IssueExpiredClaims(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)

	claims := testClaims()
	claims.ExpiresAt = time.Now().Add(-time.Minute)

	_, err := store.Issue(context.Background(), claims)
	assert.Error(t, err)
}

func TestSessionStore_IssueEmptyUserID(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewSessionStore(client)

	claims := testClaims()
	claims.UserID = ""

	_, err := store.Issue(context.Background(), claims)
	assert.Error(t, err)
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	claims := testClaims()
	claims.ExpiresAt = time.Now().Add(time.Minute)

	token, err := store.Issue(ctx, claims)
	require.NoError(t, err)

	// Advance the store clock past the TTL; the entry should be gone.
	mr.FastForward(2 * time.Minute)

	_, err = store.Verify(ctx, token)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewSessionStoreWithPrefix(client, "auth:")
	ctx := context.Background()

	token, err := store.Issue(ctx, testClaims())
	require.NoError(t, err)

	assert.True(t, mr.Exists("auth:"+token))

	_, err = store.Verify(ctx, token)
	assert.NoError(t, err)
}
