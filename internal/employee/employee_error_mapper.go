package employee

import (
	"errors"
	"strings"

	employeeerrors "go-elms/internal/employee/errors"
	"go-elms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employee_code":
			return employeeerrors.ErrEmployeeIDAlreadyExists
		default:
			return employeeerrors.ErrEmployeeAlreadyExists
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if strings.Contains(strings.ToLower(err.Error()), "uq_employee_code") {
			return employeeerrors.ErrEmployeeIDAlreadyExists
		}
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return apperror.Unavailable(err)
}
