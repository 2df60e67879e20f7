package department_test

import (
	"context"
	"database/sql"
	"testing"

	"school-hris/internal/department"
	departmenterrors "school-hris/internal/department/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	withTxFn                       func(tx *sql.Tx) department.Repository
	createFn                       func(ctx context.Context, d *department.Department) error
	findByIDFn                     func(ctx context.Context, id string) (*department.Department, error)
	findAllFn                      func(ctx context.Context) ([]department.Department, error)
	updateFn                       func(ctx context.Context, d *department.Department) error
	createDesignationFn            func(ctx context.Context, des *department.Designation) error
	findDesignationsByDepartmentFn func(ctx context.Context, departmentID string) ([]department.Designation, error)
}

func (f *fakeDepartmentRepository) WithTx(tx *sql.Tx) department.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, d *department.Department) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, d)
	}
	return nil
}

func (f *fakeDepartmentRepository) CreateDesignation(ctx context.Context, des *department.Designation) error {
	if f.createDesignationFn != nil {
		return f.createDesignationFn(ctx, des)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindDesignationsByDepartment(ctx context.Context, departmentID string) ([]department.Designation, error) {
	if f.findDesignationsByDepartmentFn != nil {
		return f.findDesignationsByDepartmentFn(ctx, departmentID)
	}
	return nil, nil
}

func setupDepartmentServiceTest(t *testing.T) (department.Service, *fakeDepartmentRepository) {
	t.Helper()
	repo := &fakeDepartmentRepository{}
	return department.NewService(repo), repo
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupDepartmentServiceTest(t)

		repo.createFn = func(ctx context.Context, d *department.Department) error {
			assert.Equal(t, "Mathematics", d.Name)
			assert.Equal(t, department.StatusActive, d.Status)
			return nil
		}

		resp, err := svc.Create(ctx, department.CreateDepartmentRequest{
			Name:        "Mathematics",
			Description: "Math faculty",
		})

		assert.NoError(t, err)
		assert.Equal(t, department.StatusActive, resp.Status)
	})
}

func TestDepartmentService_Archive(t *testing.T) {
	ctx := context.Background()
	departmentID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupDepartmentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*department.Department, error) {
			return &department.Department{
				ID:     uuid.MustParse(id),
				Name:   "Science",
				Status: department.StatusActive,
			}, nil
		}
		repo.updateFn = func(ctx context.Context, d *department.Department) error {
			assert.Equal(t, department.StatusArchived, d.Status)
			return nil
		}

		resp, err := svc.Archive(ctx, departmentID)

		assert.NoError(t, err)
		assert.Equal(t, department.StatusArchived, resp.Status)
	})

	t.Run("negative department not found", func(t *testing.T) {
		svc, _ := setupDepartmentServiceTest(t)

		_, err := svc.Archive(ctx, departmentID)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_AddDesignation(t *testing.T) {
	ctx := context.Background()
	departmentID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupDepartmentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*department.Department, error) {
			return &department.Department{
				ID:     uuid.MustParse(id),
				Name:   "English",
				Status: department.StatusActive,
			}, nil
		}
		repo.createDesignationFn = func(ctx context.Context, des *department.Designation) error {
			assert.Equal(t, departmentID, des.DepartmentID.String())
			assert.Equal(t, "Department Head", des.Title)
			return nil
		}

		resp, err := svc.AddDesignation(ctx, departmentID, department.CreateDesignationRequest{
			Title: "Department Head",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Department Head", resp.Title)
	})

	t.Run("negative archived department", func(t *testing.T) {
		svc, repo := setupDepartmentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*department.Department, error) {
			return &department.Department{
				ID:     uuid.MustParse(id),
				Status: department.StatusArchived,
			}, nil
		}

		_, err := svc.AddDesignation(ctx, departmentID, department.CreateDesignationRequest{
			Title: "Coordinator",
		})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentArchived)
	})
}
