package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	// StatusRequested marks a document HR asked the employee to submit;
	// the upload flips it back to Pending for review.
	StatusRequested = "Requested"
)

type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	DocumentType string `gorm:"type:varchar(50);not null"`
	Title        string `gorm:"type:varchar(200);not null"`
	FilePath     string `gorm:"type:text"`
	Remarks      string `gorm:"type:text"`

	Status        string `gorm:"type:varchar(20);not null;default:'Pending';index"`
	IsHRRequested bool   `gorm:"not null;default:false"`

	ReviewedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReviewedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_documents_deleted_at"`
}
