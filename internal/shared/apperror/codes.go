package apperror

// Stable error codes exposed in the API envelope. Clients branch on these,
// so renaming one is a breaking change.
const (
	CodeInvalidInput = "INVALID_INPUT" // malformed or failing-validation request
	CodeInvalidState = "INVALID_STATE" // operation not allowed in the entity's current status
	CodeConflict     = "CONFLICT"      // uniqueness or concurrency violation
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	CodeInternalError = "INTERNAL_ERROR"
)
