package adminerrors

import (
	"net/http"

	"go-elms/internal/shared/apperror"
)

var ErrAdminAlreadyExists = apperror.New(
	apperror.CodeConflict,
	"Admin with the same email already exists",
	http.StatusConflict,
)
