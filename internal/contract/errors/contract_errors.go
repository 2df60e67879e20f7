package contracterrors

import (
	"net/http"

	"school-hris/internal/shared/apperror"
)

var (
	ErrContractNotFound = apperror.New(
		apperror.CodeNotFound,
		"contract not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidContractID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid contract id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrCannotRenewPermanent = apperror.New(
		apperror.CodeInvalidState,
		"permanent contracts cannot be renewed",
		http.StatusBadRequest,
	)
	ErrNotRenewable = apperror.New(
		apperror.CodeInvalidState,
		"only active or expired contracts can be renewed",
		http.StatusBadRequest,
	)
	ErrNotActive = apperror.New(
		apperror.CodeInvalidState,
		"only active contracts can be terminated",
		http.StatusBadRequest,
	)
	ErrActiveContractExists = apperror.New(
		apperror.CodeConflict,
		"employee already has an active contract",
		http.StatusConflict,
	)
)
