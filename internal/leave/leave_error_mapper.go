package leave

import (
	"errors"

	leaveerrors "go-elms/internal/leave/errors"
	"go-elms/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperror.Unavailable(err)
}

func mapLeaveError(err error) error {
	return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
}

func mapEmployeeError(err error) error {
	return mapRepositoryError(err, leaveerrors.ErrEmployeeNotFound)
}
