package leavecredit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypePermanent   = "permanent"
	TypeContractual = "contractual"
	TypePartTime    = "part-time"
	TypeJobOrder    = "job-order"
)

// LeaveCredit is the ledger row for one employee in one school year.
// Credits are decimals because half-day leaves exist; arithmetic stays in
// decimal end to end so repeated accrual cannot drift.
type LeaveCredit struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_credits_employee_year"`
	SchoolYear     string    `gorm:"type:varchar(9);not null;uniqueIndex:uq_leave_credits_employee_year"`
	EmploymentType string    `gorm:"type:varchar(20);not null"`

	TotalCredits       decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	UsedCredits        decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	CarriedOverCredits decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	MonetizableCredits decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	ForfeitedCredits   decimal.Decimal `gorm:"type:numeric(6,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining is derived, never stored: total + carried over - used.
func (lc LeaveCredit) Remaining() decimal.Decimal {
	return lc.TotalCredits.Add(lc.CarriedOverCredits).Sub(lc.UsedCredits)
}

// carryOverCap bounds both the carry-over into the next year and the
// monetizable portion left behind.
var carryOverCap = decimal.NewFromInt(5)

var allocationByType = map[string]decimal.Decimal{
	TypePermanent:   decimal.NewFromInt(15),
	TypeContractual: decimal.NewFromInt(10),
	TypeJobOrder:    decimal.NewFromInt(5),
	TypePartTime:    decimal.NewFromInt(7),
}

var defaultAllocation = decimal.NewFromInt(10)

// Allocation returns the annual credit grant for an employment type.
// Unknown types get the contractual default.
func Allocation(employmentType string) decimal.Decimal {
	if alloc, ok := allocationByType[employmentType]; ok {
		return alloc
	}
	return defaultAllocation
}
