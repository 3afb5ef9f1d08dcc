package hrerrors

import (
	"net/http"

	"go-elms/internal/shared/apperror"
)

var (
	ErrHRNotFound = apperror.New(
		apperror.CodeNotFound,
		"HR registration not found or already reviewed",
		http.StatusNotFound,
	)
	ErrHRAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"HR with the same email already exists",
		http.StatusConflict,
	)
)
