package leavecrediterrors

import (
	"net/http"

	"school-hris/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidSchoolYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school year, expected YYYY-YYYY",
		http.StatusBadRequest,
	)
	ErrLedgerRowExists = apperror.New(
		apperror.CodeConflict,
		"leave credit row already exists for this school year",
		http.StatusConflict,
	)
)
