package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Storage-level constraint failures, mapped from PostgreSQL error codes so
// services can tell a duplicate key from a dangling reference.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapConstraintErr converts pgconn constraint errors into the sentinel errors
// above; any other error passes through unchanged.
func mapConstraintErr(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return ErrUniqueViolation
	case pgForeignKeyViolation:
		return ErrForeignKeyViolation
	case pgCheckViolation:
		return ErrCheckViolation
	}
	return err
}
