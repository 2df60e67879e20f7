package leavecredit

import "github.com/shopspring/decimal"

type InitializeRequest struct {
	EmployeeID     string `json:"employeeId" binding:"required,uuid"`
	EmploymentType string `json:"employmentType" binding:"required"`
	SchoolYear     string `json:"schoolYear"`
}

type ChangeEmploymentTypeRequest struct {
	EmploymentType string `json:"employmentType" binding:"required,oneof=permanent contractual part-time job-order"`
	SchoolYear     string `json:"schoolYear"`
}

type RolloverRequest struct {
	SchoolYear string `json:"schoolYear" binding:"required"`
}

type LeaveCreditResponse struct {
	EmployeeID         string          `json:"employeeId"`
	SchoolYear         string          `json:"schoolYear"`
	EmploymentType     string          `json:"employmentType"`
	TotalCredits       decimal.Decimal `json:"totalCredits"`
	UsedCredits        decimal.Decimal `json:"usedCredits"`
	RemainingCredits   decimal.Decimal `json:"remainingCredits"`
	CarriedOverCredits decimal.Decimal `json:"carriedOverCredits"`
	MonetizableCredits decimal.Decimal `json:"monetizableCredits"`
	ForfeitedCredits   decimal.Decimal `json:"forfeitedCredits"`
}

type RolloverDetail struct {
	EmployeeID         string          `json:"employeeId"`
	EmploymentType     string          `json:"employmentType"`
	PreviousRemaining  decimal.Decimal `json:"previousRemaining"`
	CarriedOverCredits decimal.Decimal `json:"carriedOverCredits"`
	ForfeitedCredits   decimal.Decimal `json:"forfeitedCredits"`
	MonetizableCredits decimal.Decimal `json:"monetizableCredits"`
	Error              string          `json:"error,omitempty"`
}

type RolloverResult struct {
	Message            string           `json:"message"`
	SchoolYear         string           `json:"schoolYear"`
	EmployeesProcessed int              `json:"employeesProcessed"`
	Details            []RolloverDetail `json:"details"`
}

type TypeSummary struct {
	EmploymentType string          `json:"employmentType"`
	Employees      int64           `json:"employees"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
	UsedCredits    decimal.Decimal `json:"usedCredits"`
}
