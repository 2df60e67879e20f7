package certificate

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Certificate is an employee's request for an HR-issued certification,
// e.g. employment or service records.
type Certificate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	CertificateType string `gorm:"type:varchar(50);not null"`
	Purpose         string `gorm:"type:text"`
	Remarks         string `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReviewedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_certificates_deleted_at"`
}
