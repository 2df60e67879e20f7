package contract

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypePermanent   = "permanent"
	TypeContractual = "contractual"
	TypePartTime    = "part-time"
	TypeJobOrder    = "job-order"
)

const (
	StatusActive     = "Active"
	StatusExpired    = "Expired"
	StatusTerminated = "Terminated"
)

// Contract is one employment engagement. Renewals chain through
// PreviousContractID; at most one row per employee is Active, enforced by a
// partial unique index (uq_contracts_employee_active) on top of the
// terminate-before-insert sequence.
type Contract struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_contracts_employee_status"`

	ContractType string     `gorm:"type:varchar(20);not null"`
	Position     string     `gorm:"type:varchar(100);not null"`
	Department   string     `gorm:"type:varchar(100);not null"`
	StartDate    time.Time  `gorm:"type:date;not null"`
	EndDate      *time.Time `gorm:"type:date;index"`

	// shape fields required by specific contract types
	WorkSchedule   string `gorm:"type:varchar(150)"`
	ProjectDetails string `gorm:"type:text"`

	Status            string `gorm:"type:varchar(20);not null;default:'Active';index:idx_contracts_employee_status"`
	TerminationReason string `gorm:"type:text"`

	RenewalCount       int        `gorm:"not null;default:0"`
	PreviousContractID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_contracts_deleted_at"`
}

// IsRenewable reports whether the contract can seed a renewal.
func (c Contract) IsRenewable() bool {
	return c.ContractType != TypePermanent &&
		(c.Status == StatusActive || c.Status == StatusExpired)
}
