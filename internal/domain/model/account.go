//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
)

// Account is a stored user account. The core only reads accounts; role and
// password changes happen in separate flows.
type Account struct {
	ID           string          `json:"id"         db:"id"`
	Username     string          `json:"username"   db:"username"`
	PasswordHash string          `json:"-"          db:"password_hash"`
	Role         domainauth.Role `json:"role"       db:"role"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// Team is a team an account belongs to, returned as login enrichment.
type Team struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AuthUser is the user payload returned to clients after login.
type AuthUser struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Role      domainauth.Role `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	IsAdmin   bool            `json:"isAdmin"`
	Teams     []Team          `json:"teams"`
}

// AuthResult is the complete login response: the issued token plus the user
// payload. Constructed fresh per login; never persisted.
type AuthResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// NewAuthUser builds the response payload for an account and its teams.
// Teams is never nil so the JSON shape stays a list.
func NewAuthUser(acct Account, teams []Team) AuthUser {
	if teams == nil {
		teams = []Team{}
	}
	return AuthUser{
		ID:        acct.ID,
		Username:  acct.Username,
		Role:      acct.Role,
		CreatedAt: acct.CreatedAt,
		IsAdmin:   acct.Role.IsAdmin(),
		Teams:     teams,
	}
}
