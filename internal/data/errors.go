package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/target/pulse-api/internal/ports"
)

// classifyPgError maps privilege/policy failures onto ports.ErrDatabaseAccess
// while leaving other errors untouched for the caller to wrap.
func classifyPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.InsufficientPrivilege, pgerrcode.InvalidAuthorizationSpecification:
			return errors.Join(ports.ErrDatabaseAccess, err)
		}
	}
	return err
}
