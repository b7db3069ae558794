// Package pgerrs classifies PostgreSQL failures for the repositories.
package pgerrs

import (
	"errors"
	"strings"

	"laundry/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	classTransactionRollback = "40"
	classConnectionException = "08"

	UniqueViolation = "23505"
)

// Classify wraps serialization failures, deadlocks and connection errors as
// errs.TransientError so callers may retry them. Other errors pass through.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, classTransactionRollback) ||
			strings.HasPrefix(pgErr.Code, classConnectionException) {
			return errs.NewTransientError(err)
		}
		return err
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return errs.NewTransientError(err)
	}
	return err
}

// IsUniqueViolation reports whether err was raised by the named unique index.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
