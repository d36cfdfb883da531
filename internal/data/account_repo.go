package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/target/pulse-api/internal/data/pgxutil"
	"github.com/target/pulse-api/internal/domain/model"
	"github.com/target/pulse-api/internal/ports"
)

// AccountRepo provides database operations for accounts.
type AccountRepo struct {
	DB *sql.DB
}

var _ ports.AccountReader = (*AccountRepo)(nil)

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{DB: db}
}

// SQL query constants for static queries.
const (
	accountGetByUsernameQuery = `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		WHERE username = $1`

	accountGetByIDQuery = `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		WHERE id = $1`
)

// GetByUsername retrieves an account by username, password hash included.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.getByQuery(ctx, accountGetByUsernameQuery, "failed to get account by username", strings.TrimSpace(username))
}

// GetByID retrieves an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return r.getByQuery(ctx, accountGetByIDQuery, "failed to get account by ID", id)
}

// getByQuery executes a single-row account query.
// Uses variadic args to avoid slice allocation at call sites.
func (r *AccountRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Account, error) {
	var acct model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		acct, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, classifyPgError(err))
	}
	return &acct, nil
}
