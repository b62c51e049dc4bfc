package pgsql

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
)

// PostgreSQL error codes the store translates.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, what, id)
}

// mapError translates driver errors into the error taxonomy. Anything unrecognised is a
// storage failure and unwraps to apperrors.ErrInternal.
func mapError(err error, what, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(what, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, what, id)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s %s violates %s", apperrors.ErrValidation, what, id, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s %s violates %s", apperrors.ErrValidation, what, id, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, fmt.Sprintf("storage failure on %s %s", what, id), err)
}

// affectedOne reports notFound when an UPDATE or DELETE matched no row.
func affectedOne(tag pgconn.CommandTag, err error, what, id string) error {
	if err != nil {
		return mapError(err, what, id)
	}
	if tag.RowsAffected() == 0 {
		return notFound(what, id)
	}
	return nil
}
