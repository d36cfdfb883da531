package devseed

// Package devseed populates a development database with known accounts and
// teams so the login flow can be exercised immediately after startup. It is
// only invoked in development mode and every step is idempotent.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/target/pulse-api/internal/adapters/credentials"
	"github.com/target/pulse-api/internal/data/pgxutil"
	domainauth "github.com/target/pulse-api/internal/domain/auth"
)

// seedAccount describes one development login.
type seedAccount struct {
	Username string
	Password string
	Role     domainauth.Role
	Teams    []string
}

// defaultAccounts are the development logins. Passwords are hashed at seed
// time; nothing here is usable outside a dev database.
func defaultAccounts() []seedAccount {
	return []seedAccount{
		{Username: "alice", Password: "correct-pw", Role: domainauth.RoleAdmin, Teams: []string{"Analytics"}},
		{Username: "bob", Password: "bob-pw", Role: domainauth.RoleUser, Teams: []string{"Analytics", "Marketing"}},
		{Username: "carol", Password: "carol-pw", Role: domainauth.RoleViewOnly},
	}
}

// Run executes the development seeding workflow against the provided DB.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	failures := 0
	for _, acct := range defaultAccounts() {
		if err := seedOne(ctx, db, acct); err != nil {
			logger.ErrorContext(ctx, "failed to seed account", "username", acct.Username, "error", err)
			failures++
			continue
		}
		logger.InfoContext(ctx, "seeded dev account", "username", acct.Username, "role", acct.Role)
	}

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

// seedOne creates the account and its team memberships in one transaction so
// a reload never observes a half-seeded login.
func seedOne(ctx context.Context, db *sql.DB, acct seedAccount) error {
	hash, err := credentials.HashPassword(acct.Password)
	if err != nil {
		return err
	}

	return pgxutil.WithSQLTx(ctx, db, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			// Existing accounts keep their password; seeding never overwrites.
			var accountID string
			err := tx.QueryRowContext(ctx, `
				INSERT INTO accounts (username, password_hash, role)
				VALUES ($1, $2, $3)
				ON CONFLICT (username) DO UPDATE SET role = EXCLUDED.role
				RETURNING id`,
				acct.Username, hash, string(acct.Role),
			).Scan(&accountID)
			if err != nil {
				return fmt.Errorf("upsert account: %w", err)
			}

			for _, team := range acct.Teams {
				if err := seedMembership(ctx, tx, accountID, team); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

func seedMembership(ctx context.Context, tx *sql.Tx, accountID, teamName string) error {
	var teamID string
	err := tx.QueryRowContext(ctx, `
		INSERT INTO teams (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`,
		teamName,
	).Scan(&teamID)
	if err != nil {
		return fmt.Errorf("upsert team %q: %w", teamName, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO team_members (team_id, account_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		teamID, accountID,
	); err != nil {
		return fmt.Errorf("add membership %q: %w", teamName, err)
	}
	return nil
}
