package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	Reason    string    `gorm:"type:text"`

	// DaysCount is the inclusive day span; fractional values cover
	// half-day leaves. SchoolYear is derived from StartDate at creation.
	DaysCount  decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	SchoolYear string          `gorm:"type:varchar(9);not null;index"`

	Status          string     `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leaves_status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	// CreditApplied marks that this leave's days were debited from the
	// ledger, so re-approval cannot double-count usage.
	CreditApplied bool `gorm:"not null;default:false"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}
