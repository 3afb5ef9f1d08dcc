package hr

import (
	"errors"

	hrerrors "go-elms/internal/hr/errors"
	"go-elms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hrerrors.ErrHRNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return hrerrors.ErrHRAlreadyExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return hrerrors.ErrHRAlreadyExists
	}

	return apperror.Unavailable(err)
}
