package department

import (
	"context"
	"database/sql"

	"school-hris/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Department) error
	FindByID(ctx context.Context, id string) (*Department, error)
	FindAll(ctx context.Context) ([]Department, error)
	Update(ctx context.Context, d *Department) error
	CreateDesignation(ctx context.Context, des *Designation) error
	FindDesignationsByDepartment(ctx context.Context, departmentID string) ([]Designation, error)
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

func (r *repository) Create(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var departments []Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *repository) Update(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) CreateDesignation(ctx context.Context, des *Designation) error {
	return r.db.WithContext(ctx).Create(des).Error
}

func (r *repository) FindDesignationsByDepartment(ctx context.Context, departmentID string) ([]Designation, error) {
	var designations []Designation
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("title ASC").
		Find(&designations).Error
	return designations, err
}
