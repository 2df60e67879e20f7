package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"school-hris/internal/auth"
	autherrors "school-hris/internal/auth/errors"
	"school-hris/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn           func(tx *sql.Tx) employee.Repository
	createFn           func(ctx context.Context, e *employee.Employee) error
	findAllFn          func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	findByEmployeeIDFn func(ctx context.Context, employeeID string) (*employee.Employee, error)
	findByEmailFn      func(ctx context.Context, email string) (*employee.Employee, error)
	updateFn           func(ctx context.Context, e *employee.Employee) error
	updateStatusFn     func(ctx context.Context, id, status string) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.findByEmployeeIDFn != nil {
		return f.findByEmployeeIDFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func activeEmployee(t *testing.T, password string) *employee.Employee {
	t.Helper()
	return &employee.Employee{
		ID:         uuid.New(),
		EmployeeID: "EMP-000042",
		FullName:   "Maria Santos",
		Email:      "maria.santos@school.edu",
		Password:   hashPassword(t, password),
		Role:       "employee",
		Status:     "Active",
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		repo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			assert.Equal(t, "maria.santos@school.edu", email)
			return activeEmployee(t, "correct-horse"), nil
		}
		svc := auth.NewService(repo)

		access, refresh, resp, err := svc.Login(ctx, "maria.santos@school.edu", "correct-horse")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, "EMP-000042", resp.EmployeeID)
		assert.Equal(t, "employee", resp.Role)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		repo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			return activeEmployee(t, "correct-horse"), nil
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "maria.santos@school.edu", "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email gets the same answer", func(t *testing.T) {
		svc := auth.NewService(&fakeEmployeeRepository{})

		_, _, _, err := svc.Login(ctx, "nobody@school.edu", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative suspended account", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		repo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			e := activeEmployee(t, "correct-horse")
			e.IsSuspended = true
			return e, nil
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "maria.santos@school.edu", "correct-horse")

		assert.ErrorIs(t, err, autherrors.ErrAccountSuspended)
	})

	t.Run("negative resigned account", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		repo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			e := activeEmployee(t, "correct-horse")
			e.Status = "Resigned"
			return e, nil
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "maria.santos@school.edu", "correct-horse")

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success round-trips through login", func(t *testing.T) {
		e := activeEmployee(t, "correct-horse")
		repo := &fakeEmployeeRepository{}
		repo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			return e, nil
		}
		repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			assert.Equal(t, e.ID.String(), id)
			return e, nil
		}
		svc := auth.NewService(repo)

		_, refresh, _, err := svc.Login(ctx, e.Email, "correct-horse")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, e.ID.String(), resp.ID)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeEmployeeRepository{})

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		e := activeEmployee(t, "pw")
		repo := &fakeEmployeeRepository{}
		repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return e, nil
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, e.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, e.FullName, resp.FullName)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		svc := auth.NewService(&fakeEmployeeRepository{})

		_, err := svc.GetMe(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
