package leave

import "github.com/shopspring/decimal"

type CreateLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason"`
	// DaysCount overrides the inclusive date diff, e.g. "0.5" for a
	// half-day leave.
	DaysCount string `json:"daysCount"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employeeId"`
	LeaveType       string          `json:"leaveType"`
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	DaysCount       decimal.Decimal `json:"daysCount"`
	SchoolYear      string          `json:"schoolYear"`
	Reason          string          `json:"reason,omitempty"`
	Status          string          `json:"status"`
	ApprovedBy      *string         `json:"approvedBy,omitempty"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
}
