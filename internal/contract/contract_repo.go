package contract

import (
	"context"
	"database/sql"
	"time"

	"school-hris/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=contract_repo.go -destination=mock/contract_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Contract) error
	FindByID(ctx context.Context, id string) (*Contract, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Contract, error)
	FindActiveByEmployee(ctx context.Context, employeeID string) ([]Contract, error)
	Update(ctx context.Context, c *Contract) error
	TerminateActiveByEmployee(ctx context.Context, employeeID, reason string) error
	CountActiveByEmployee(ctx context.Context, employeeID string) (int64, error)
	FindExpiring(ctx context.Context, within time.Duration) ([]Contract, error)
	FindExpiredActive(ctx context.Context, today time.Time) ([]Contract, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	GetEmployeeStatus(ctx context.Context, employeeID string) (string, error)
	UpdateEmployeeStatus(ctx context.Context, employeeID, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds every statement onto the caller's transaction so multi-row
// lifecycle changes commit or roll back as one.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, c *Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Contract, error) {
	var c Contract
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) Update(ctx context.Context, c *Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) TerminateActiveByEmployee(ctx context.Context, employeeID, reason string) error {
	return r.db.WithContext(ctx).
		Model(&Contract{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Updates(map[string]any{
			"status":             StatusTerminated,
			"termination_reason": reason,
		}).Error
}

func (r *repository) CountActiveByEmployee(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Contract{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Count(&count).Error
	return count, err
}

func (r *repository) FindExpiring(ctx context.Context, within time.Duration) ([]Contract, error) {
	var contracts []Contract
	cutoff := time.Now().Add(within)
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Where("end_date IS NOT NULL").
		Where("end_date <= ?", cutoff).
		Order("end_date ASC").
		Find(&contracts).Error
	return contracts, err
}

// FindExpiredActive returns Active contracts whose end date is strictly
// before today. Permanent contracts have a null end date and never match.
func (r *repository) FindExpiredActive(ctx context.Context, today time.Time) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Where("end_date IS NOT NULL").
		Where("end_date < ?", today).
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) GetEmployeeStatus(ctx context.Context, employeeID string) (string, error) {
	var status string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("status").
		Where("id = ?", employeeID).
		Scan(&status).Error
	return status, err
}

func (r *repository) UpdateEmployeeStatus(ctx context.Context, employeeID, status string) error {
	return r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Update("status", status).Error
}
