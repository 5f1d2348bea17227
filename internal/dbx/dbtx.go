// Package dbx provides tiny DB abstractions shared by repositories: the DBTX
// interface implemented by both *sql.DB and *sql.Tx, and Postgres error
// classification helpers.
package dbx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLSTATE unique_violation.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err (or anything it wraps) is a Postgres
// unique constraint violation. When constraint is non-empty, only a violation
// of that named constraint or index matches.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
