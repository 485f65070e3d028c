package domain

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Ledger error taxonomy. Handlers map these onto HTTP statuses;
// usecases wrap them with context but never replace the sentinel.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvariantViolation = errors.New("ledger invariant violation")
	ErrNotFound           = errors.New("not found")
	ErrPersistenceFailure = errors.New("persistence failure")

	ErrInvalidRequest = errors.New("invalid request")
)

// ParsePGErrorCode extracts the SQLSTATE from a pgx error, e.g. 23505
// for unique_violation.
func ParsePGErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return "unknown"
}
