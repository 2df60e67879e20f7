package departmenterrors

import (
	"net/http"

	"school-hris/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrDepartmentNameExists = apperror.New(
		apperror.CodeConflict,
		"department with this name already exists",
		http.StatusConflict,
	)
	ErrDepartmentArchived = apperror.New(
		apperror.CodeInvalidState,
		"department is archived",
		http.StatusBadRequest,
	)
)
