package testutil

import (
	"context"
	"database/sql"
	"time"

	domainauth "github.com/target/pulse-api/internal/domain/auth"
	"github.com/target/pulse-api/internal/domain/model"
)

// AccountBuilder provides a fluent interface for seeding test accounts.
type AccountBuilder struct {
	acct model.Account
}

// NewAccount creates an AccountBuilder with sensible defaults.
// Tests that verify credentials should set a real hash via WithPasswordHash.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		acct: model.Account{
			Username:     "alice",
			PasswordHash: "$2a$10$invalidhashfortestingonlyinvalidhashfortestingonly...",
			Role:         domainauth.RoleUser,
		},
	}
}

// WithUsername sets the username.
func (b *AccountBuilder) WithUsername(username string) *AccountBuilder {
	b.acct.Username = username
	return b
}

// WithPasswordHash sets the stored password hash.
func (b *AccountBuilder) WithPasswordHash(hash string) *AccountBuilder {
	b.acct.PasswordHash = hash
	return b
}

// WithRole sets the account role.
func (b *AccountBuilder) WithRole(role domainauth.Role) *AccountBuilder {
	b.acct.Role = role
	return b
}

// Insert writes the account and returns it with DB-assigned fields populated.
func (b *AccountBuilder) Insert(t TestingTB, db *sql.DB) model.Account {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row := db.QueryRowContext(ctx, `
		INSERT INTO accounts (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		b.acct.Username, b.acct.PasswordHash, b.acct.Role)

	acct := b.acct
	if err := row.Scan(&acct.ID, &acct.CreatedAt); err != nil {
		t.Fatalf("Failed to insert test account: %v", err)
	}
	return acct
}

// InsertTeam creates a team and returns it.
func InsertTeam(t TestingTB, db *sql.DB, name string) model.Team {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var team model.Team
	team.Name = name
	row := db.QueryRowContext(ctx, `
		INSERT INTO teams (name) VALUES ($1)
		RETURNING id, created_at`, name)
	if err := row.Scan(&team.ID, &team.CreatedAt); err != nil {
		t.Fatalf("Failed to insert test team: %v", err)
	}
	return team
}

// AddTeamMember links an account to a team.
func AddTeamMember(t TestingTB, db *sql.DB, teamID, accountID string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `
		INSERT INTO team_members (team_id, account_id) VALUES ($1, $2)`,
		teamID, accountID); err != nil {
		t.Fatalf("Failed to insert test team membership: %v", err)
	}
}
