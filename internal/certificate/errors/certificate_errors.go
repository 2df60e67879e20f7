package certificateerrors

import (
	"net/http"

	"school-hris/internal/shared/apperror"
)

var (
	ErrCertificateNotFound = apperror.New(
		apperror.CodeNotFound,
		"certificate request not found",
		http.StatusNotFound,
	)
	ErrInvalidCertificateID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid certificate id",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"certificate request is not pending",
		http.StatusBadRequest,
	)
)
