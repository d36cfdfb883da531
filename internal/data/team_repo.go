package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/pulse-api/internal/data/pgxutil"
	"github.com/target/pulse-api/internal/domain/model"
	"github.com/target/pulse-api/internal/ports"
)

// TeamRepo provides database operations for teams and memberships.
type TeamRepo struct {
	DB *sql.DB
}

var _ ports.TeamReader = (*TeamRepo)(nil)

// NewTeamRepo creates a new TeamRepo.
func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{DB: db}
}

const teamListForAccountQuery = `
	SELECT t.id, t.name, t.created_at
	FROM teams t
	JOIN team_members tm ON tm.team_id = t.id
	WHERE tm.account_id = $1
	ORDER BY t.name ASC`

// ListForAccount retrieves all teams the account is a member of.
// An account with no memberships yields an empty list, not an error.
func (r *TeamRepo) ListForAccount(ctx context.Context, accountID string) ([]model.Team, error) {
	var rowsOut []model.Team
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, teamListForAccountQuery, accountID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Team])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list teams for account: %w", classifyPgError(err))
	}

	if rowsOut == nil {
		rowsOut = []model.Team{}
	}
	return rowsOut, nil
}
