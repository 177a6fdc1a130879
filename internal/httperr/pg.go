package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
	pgForeignKeyFailure  = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation || errors.Is(err, gorm.ErrDuplicatedKey)
}

func IsExclusionConflict(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyFailure || errors.Is(err, gorm.ErrForeignKeyViolated)
}

// FromStore translates a repository error into the taxonomy. notFound is
// the code used when the row does not exist.
func FromStore(err error, notFound string) error {
	if err == nil {
		return nil
	}

	var be BusinessError
	if errors.As(err, &be) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound(notFound)
	case IsUniqueViolation(err), IsExclusionConflict(err):
		return BusinessError{Kind: KindConflict, Code: "already_exists", Err: err}
	case IsForeignKeyViolation(err):
		return BusinessError{Kind: KindValidation, Code: "invalid_reference", Err: err}
	}

	return ErrPersistence("persistence_error", err)
}
