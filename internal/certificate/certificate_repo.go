package certificate

import (
	"context"
	"database/sql"

	"school-hris/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=certificate_repo.go -destination=mock/certificate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Certificate) error
	FindByID(ctx context.Context, id string) (*Certificate, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Certificate, error)
	FindAll(ctx context.Context, status string) ([]Certificate, error)
	Update(ctx context.Context, c *Certificate) error
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

func (r *repository) Create(ctx context.Context, c *Certificate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Certificate, error) {
	var c Certificate
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Certificate, error) {
	var certs []Certificate
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&certs).Error
	return certs, err
}

func (r *repository) FindAll(ctx context.Context, status string) ([]Certificate, error) {
	var certs []Certificate
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&certs).Error
	return certs, err
}

func (r *repository) Update(ctx context.Context, c *Certificate) error {
	return r.db.WithContext(ctx).Save(c).Error
}
