package autherrors

import (
	"net/http"

	"go-elms/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)
	ErrNotApproved = apperror.New(
		apperror.CodeForbidden,
		"Account is awaiting administrator approval",
		http.StatusForbidden,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeInvalidToken,
		"Reset link is invalid or has expired",
		http.StatusBadRequest,
	)
	ErrPasswordTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"Password must be at least 6 characters",
		http.StatusBadRequest,
	)
)
