package profilechange

import (
	"context"
	"database/sql"

	"school-hris/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profilechange_repo.go -destination=mock/profilechange_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *ProfileChangeRequest) error
	FindByID(ctx context.Context, id string) (*ProfileChangeRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]ProfileChangeRequest, error)
	FindAllPending(ctx context.Context) ([]ProfileChangeRequest, error)
	HasPendingByEmployee(ctx context.Context, employeeID string) (bool, error)
	Update(ctx context.Context, r *ProfileChangeRequest) error
	GetEmployeeProfile(ctx context.Context, employeeID string) (map[string]string, error)
	UpdateEmployeeFields(ctx context.Context, employeeID string, fields map[string]string) error
}

// changeableFields maps request keys to employees table columns. Identity
// and access fields are deliberately absent.
var changeableFields = map[string]string{
	"fullName":         "full_name",
	"phone":            "phone",
	"address":          "address",
	"civilStatus":      "civil_status",
	"emergencyContact": "emergency_contact",
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, req *ProfileChangeRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ProfileChangeRequest, error) {
	var req ProfileChangeRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]ProfileChangeRequest, error) {
	var reqs []ProfileChangeRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindAllPending(ctx context.Context) ([]ProfileChangeRequest, error) {
	var reqs []ProfileChangeRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) HasPendingByEmployee(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProfileChangeRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, req *ProfileChangeRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// GetEmployeeProfile reads the changeable columns of an employee row into a
// request-key map for snapshotting.
func (r *repository) GetEmployeeProfile(ctx context.Context, employeeID string) (map[string]string, error) {
	var row struct {
		FullName         string
		Phone            string
		Address          string
		CivilStatus      string
		EmergencyContact string
	}
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("full_name, phone, address, civil_status, emergency_contact").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"fullName":         row.FullName,
		"phone":            row.Phone,
		"address":          row.Address,
		"civilStatus":      row.CivilStatus,
		"emergencyContact": row.EmergencyContact,
	}, nil
}

func (r *repository) UpdateEmployeeFields(ctx context.Context, employeeID string, fields map[string]string) error {
	updates := make(map[string]any, len(fields))
	for key, value := range fields {
		column, ok := changeableFields[key]
		if !ok {
			continue
		}
		updates[column] = value
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Updates(updates).Error
}
