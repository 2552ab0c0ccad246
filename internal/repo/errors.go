package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Postgres SQLSTATE codes translated into domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapPgError translates constraint violations into domain sentinels so the
// handler layer can answer 404/422 instead of 500. The underlying error is kept
// in the chain for logging. Any other error is returned unchanged.
//
// A foreign key violation means the referenced parent row is gone, which the
// caller sees as NotFound. A check violation means a row slipped past service
// validation (e.g. a concurrent edit shortened the trip) and is reported as
// a validation failure.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName)
	case pgCheckViolation:
		return &domain.ValidationError{
			Field:   pgErr.ColumnName,
			Rule:    pgErr.ConstraintName,
			Message: pgErr.Message,
		}
	}
	return err
}
