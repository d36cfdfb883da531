package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and token claims.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleViewOnly Role = "view-only"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewOnly:
		return true
	default:
		return false
	}
}

// IsAdmin returns true if the role grants administrative access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Claims is the authenticated state carried by an issued session token,
// whichever strategy produced it. For the server-side session path the
// claims live in the store; for the signed-token path they are embedded
// in the token itself.
type Claims struct {
	UserID    string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the claims are past their expiry at the given time.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Session is the server-side record persisted for an authenticated user
// on the opaque-token path. ID is an opaque identifier with no embedded
// meaning; it must be looked up in the store to resolve to these fields.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims converts the stored session into the common claims shape.
func (s Session) Claims() Claims {
	return Claims{
		UserID:    s.UserID,
		Role:      s.Role,
		IssuedAt:  s.IssuedAt,
		ExpiresAt: s.ExpiresAt,
	}
}
