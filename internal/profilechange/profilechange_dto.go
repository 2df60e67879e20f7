package profilechange

import "encoding/json"

type CreateProfileChangeRequest struct {
	// RequestedChanges carries only the keys the employee wants changed,
	// e.g. {"phone": "0917...", "address": "..."}.
	RequestedChanges map[string]string `json:"requestedChanges" binding:"required"`
}

type RejectProfileChangeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ProfileChangeResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employeeId"`
	CurrentValues    json.RawMessage `json:"currentValues"`
	RequestedChanges json.RawMessage `json:"requestedChanges"`
	ChangedFields    []string        `json:"changedFields"`
	Status           string          `json:"status"`
	ResolvedBy       *string         `json:"resolvedBy,omitempty"`
	RejectionReason  *string         `json:"rejectionReason,omitempty"`
}
