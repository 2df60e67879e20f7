package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleMIS      = "mis"
)

const (
	StatusActive     = "Active"
	StatusInactive   = "Inactive"
	StatusTerminated = "Terminated"
	StatusOnLeave    = "On Leave"
	StatusResigned   = "Resigned"
	StatusRetired    = "Retired"
)

type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID    string     `gorm:"type:varchar(20);uniqueIndex:uq_employee_number"`
	FullName      string     `gorm:"type:varchar(150);not null"`
	Email         string     `gorm:"type:varchar(150);uniqueIndex:uq_employee_email"`
	Password      string     `gorm:"type:varchar(100);not null"`
	Role          string     `gorm:"type:varchar(20);not null;default:'employee'"`
	Status        string     `gorm:"type:varchar(20);not null;default:'Active';index"`
	IsSuspended   bool       `gorm:"not null;default:false"`
	DepartmentID  *uuid.UUID `gorm:"type:uuid"`
	DesignationID *uuid.UUID `gorm:"type:uuid"`

	// Personal data sheet
	Phone            string `gorm:"type:varchar(30)"`
	Address          string `gorm:"type:text"`
	BirthDate        *time.Time
	CivilStatus      string `gorm:"type:varchar(30)"`
	HireDate         time.Time
	EmergencyContact string `gorm:"type:varchar(150)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}

// Valid reports whether the record carries the minimum identity fields a
// listable employee must have.
func (e Employee) Valid() bool {
	return e.EmployeeID != "" && e.FullName != "" && e.Email != ""
}
