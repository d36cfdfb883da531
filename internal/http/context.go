package httpx

import (
	"context"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
)

// claimsKey is an unexported context key type for authenticated claims.
type claimsKey struct{}

// SetClaimsInContext returns a child context carrying the authenticated claims.
func SetClaimsInContext(ctx context.Context, claims domainauth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext retrieves the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (domainauth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(domainauth.Claims)
	return claims, ok
}
