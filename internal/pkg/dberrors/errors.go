package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicateConstraintError reports whether err is a unique constraint
// violation (PostgreSQL error code 23505). When constraint names are given,
// the violated constraint must match one of them.
func IsDuplicateConstraintError(err error, constraintNames ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	if len(constraintNames) == 0 {
		return true
	}
	for _, name := range constraintNames {
		if pgErr.ConstraintName == name {
			return true
		}
	}
	return false
}

// IsForeignKeyViolation reports whether err is a foreign key violation
// (PostgreSQL error code 23503)
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// IsNotFoundError reports whether err indicates no rows were returned
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
