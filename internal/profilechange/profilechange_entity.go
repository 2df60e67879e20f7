package profilechange

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ProfileChangeRequest snapshots the fields an employee asked HR to change.
// CurrentValues holds the pre-change values of exactly the changed keys;
// RequestedChanges holds the new values. A partial unique index on
// (employee_id) WHERE status = 'pending' enforces one open request at a
// time.
type ProfileChangeRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	CurrentValues    datatypes.JSON `gorm:"type:jsonb;not null"`
	RequestedChanges datatypes.JSON `gorm:"type:jsonb;not null"`
	ChangedFields    datatypes.JSON `gorm:"type:jsonb;not null"`

	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ResolvedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_profile_changes_deleted_at"`
}
