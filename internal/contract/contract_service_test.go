package contract_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"school-hris/internal/contract"
	contracterrors "school-hris/internal/contract/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeContractRepository struct {
	withTxFn                    func(tx *sql.Tx) contract.Repository
	createFn                    func(ctx context.Context, c *contract.Contract) error
	findByIDFn                  func(ctx context.Context, id string) (*contract.Contract, error)
	findAllByEmployeeFn         func(ctx context.Context, employeeID string) ([]contract.Contract, error)
	findActiveByEmployeeFn      func(ctx context.Context, employeeID string) ([]contract.Contract, error)
	updateFn                    func(ctx context.Context, c *contract.Contract) error
	terminateActiveByEmployeeFn func(ctx context.Context, employeeID, reason string) error
	countActiveByEmployeeFn     func(ctx context.Context, employeeID string) (int64, error)
	findExpiringFn              func(ctx context.Context, within time.Duration) ([]contract.Contract, error)
	findExpiredActiveFn         func(ctx context.Context, today time.Time) ([]contract.Contract, error)
	employeeExistsFn            func(ctx context.Context, employeeID string) (bool, error)
	getEmployeeStatusFn         func(ctx context.Context, employeeID string) (string, error)
	updateEmployeeStatusFn      func(ctx context.Context, employeeID, status string) error
}

func (f *fakeContractRepository) WithTx(tx *sql.Tx) contract.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeContractRepository) FindByID(ctx context.Context, id string) (*contract.Contract, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeContractRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeContractRepository) FindActiveByEmployee(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	if f.findActiveByEmployeeFn != nil {
		return f.findActiveByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeContractRepository) Update(ctx context.Context, c *contract.Contract) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeContractRepository) TerminateActiveByEmployee(ctx context.Context, employeeID, reason string) error {
	if f.terminateActiveByEmployeeFn != nil {
		return f.terminateActiveByEmployeeFn(ctx, employeeID, reason)
	}
	return nil
}

func (f *fakeContractRepository) CountActiveByEmployee(ctx context.Context, employeeID string) (int64, error) {
	if f.countActiveByEmployeeFn != nil {
		return f.countActiveByEmployeeFn(ctx, employeeID)
	}
	return 0, nil
}

func (f *fakeContractRepository) FindExpiring(ctx context.Context, within time.Duration) ([]contract.Contract, error) {
	if f.findExpiringFn != nil {
		return f.findExpiringFn(ctx, within)
	}
	return nil, nil
}

func (f *fakeContractRepository) FindExpiredActive(ctx context.Context, today time.Time) ([]contract.Contract, error) {
	if f.findExpiredActiveFn != nil {
		return f.findExpiredActiveFn(ctx, today)
	}
	return nil, nil
}

func (f *fakeContractRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeContractRepository) GetEmployeeStatus(ctx context.Context, employeeID string) (string, error) {
	if f.getEmployeeStatusFn != nil {
		return f.getEmployeeStatusFn(ctx, employeeID)
	}
	return "Active", nil
}

func (f *fakeContractRepository) UpdateEmployeeStatus(ctx context.Context, employeeID, status string) error {
	if f.updateEmployeeStatusFn != nil {
		return f.updateEmployeeStatusFn(ctx, employeeID, status)
	}
	return nil
}

type contractServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service contract.Service
	repo    *fakeContractRepository
}

func setupContractServiceTest(t *testing.T) *contractServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeContractRepository{}
	svc := contract.NewService(db, repo)

	return &contractServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestContractValidate(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("negative permanent with end date", func(t *testing.T) {
		err := contract.Validate(contract.TypePermanent, start, &end, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "should not have an end date")
	})

	t.Run("negative contractual without end date", func(t *testing.T) {
		err := contract.Validate(contract.TypeContractual, start, nil, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "require an end date")
	})

	t.Run("negative part-time without work schedule", func(t *testing.T) {
		err := contract.Validate(contract.TypePartTime, start, &end, "  ", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "work schedule")
	})

	t.Run("negative job-order without project details", func(t *testing.T) {
		err := contract.Validate(contract.TypeJobOrder, start, &end, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "project details")
	})

	t.Run("negative end date before start date", func(t *testing.T) {
		before := start.AddDate(0, -1, 0)
		err := contract.Validate(contract.TypeContractual, start, &before, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "after start date")
	})

	t.Run("success permanent without end date", func(t *testing.T) {
		assert.NoError(t, contract.Validate(contract.TypePermanent, start, nil, "", ""))
	})

	t.Run("success job-order with project details", func(t *testing.T) {
		assert.NoError(t, contract.Validate(contract.TypeJobOrder, start, &end, "", "Library renovation"))
	})
}

func TestContractService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success supersedes the previous active contract", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		superseded := false
		deps.repo.terminateActiveByEmployeeFn = func(ctx context.Context, eid, reason string) error {
			superseded = true
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, "New contract created", reason)
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, c *contract.Contract) error {
			assert.Equal(t, contract.StatusActive, c.Status)
			assert.Equal(t, contract.TypeContractual, c.ContractType)
			return nil
		}

		resp, err := deps.service.Create(ctx, contract.CreateContractRequest{
			EmployeeID:   employeeID,
			ContractType: contract.TypeContractual,
			StartDate:    "2026-06-01",
			EndDate:      "2027-03-31",
			Position:     "Teacher I",
			Department:   "Mathematics",
		})

		assert.NoError(t, err)
		assert.True(t, superseded)
		assert.Equal(t, contract.StatusActive, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, contract.CreateContractRequest{
			EmployeeID:   employeeID,
			ContractType: contract.TypePermanent,
			StartDate:    "2026-06-01",
			Position:     "Teacher I",
			Department:   "Mathematics",
		})

		assert.ErrorIs(t, err, contracterrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative validation failure opens no transaction", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, contract.CreateContractRequest{
			EmployeeID:   employeeID,
			ContractType: contract.TypePermanent,
			StartDate:    "2026-06-01",
			EndDate:      "2027-03-31",
			Position:     "Teacher I",
			Department:   "Mathematics",
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestContractService_Renew(t *testing.T) {
	ctx := context.Background()
	contractID := uuid.New().String()
	employeeID := uuid.New()

	t.Run("success chains the renewal to the old contract", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		endDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*contract.Contract, error) {
			return &contract.Contract{
				ID:           uuid.MustParse(id),
				EmployeeID:   employeeID,
				ContractType: contract.TypeContractual,
				Position:     "Teacher II",
				Department:   "Science",
				StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:      &endDate,
				Status:       contract.StatusActive,
				RenewalCount: 1,
			}, nil
		}
		var oldTerminated *contract.Contract
		deps.repo.updateFn = func(ctx context.Context, c *contract.Contract) error {
			oldTerminated = c
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, c *contract.Contract) error {
			assert.Equal(t, contract.TypeContractual, c.ContractType)
			assert.Equal(t, "Teacher II", c.Position)
			assert.Equal(t, 2, c.RenewalCount)
			assert.NotNil(t, c.PreviousContractID)
			assert.Equal(t, contractID, c.PreviousContractID.String())
			return nil
		}

		resp, err := deps.service.Renew(ctx, contractID, contract.RenewContractRequest{
			StartDate: "2026-06-01",
			EndDate:   "2027-03-31",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.RenewalCount)
		assert.NotNil(t, oldTerminated)
		assert.Equal(t, contract.StatusTerminated, oldTerminated.Status)
		assert.Equal(t, "Contract renewed", oldTerminated.TerminationReason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative permanent contracts cannot be renewed", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*contract.Contract, error) {
			return &contract.Contract{
				ID:           uuid.MustParse(id),
				EmployeeID:   employeeID,
				ContractType: contract.TypePermanent,
				Status:       contract.StatusActive,
			}, nil
		}

		_, err := deps.service.Renew(ctx, contractID, contract.RenewContractRequest{
			StartDate: "2026-06-01",
			EndDate:   "2027-03-31",
		})

		assert.ErrorIs(t, err, contracterrors.ErrCannotRenewPermanent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative terminated contracts cannot be renewed", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*contract.Contract, error) {
			return &contract.Contract{
				ID:           uuid.MustParse(id),
				EmployeeID:   employeeID,
				ContractType: contract.TypeContractual,
				Status:       contract.StatusTerminated,
			}, nil
		}

		_, err := deps.service.Renew(ctx, contractID, contract.RenewContractRequest{
			StartDate: "2026-06-01",
			EndDate:   "2027-03-31",
		})

		assert.ErrorIs(t, err, contracterrors.ErrNotRenewable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestContractService_Terminate(t *testing.T) {
	ctx := context.Background()
	contractID := uuid.New().String()
	employeeID := uuid.New()

	t.Run("success cascades onto the employee status", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*contract.Contract, error) {
			return &contract.Contract{
				ID:           uuid.MustParse(id),
				EmployeeID:   employeeID,
				ContractType: contract.TypeContractual,
				Status:       contract.StatusActive,
			}, nil
		}
		cascaded := false
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, eid, status string) error {
			cascaded = true
			assert.Equal(t, employeeID.String(), eid)
			assert.Equal(t, "Terminated", status)
			return nil
		}

		resp, err := deps.service.Terminate(ctx, contractID, "End of engagement")

		assert.NoError(t, err)
		assert.True(t, cascaded)
		assert.Equal(t, contract.StatusTerminated, resp.Status)
		assert.Equal(t, "End of engagement", resp.TerminationReason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative only active contracts can be terminated", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*contract.Contract, error) {
			return &contract.Contract{
				ID:         uuid.MustParse(id),
				EmployeeID: employeeID,
				Status:     contract.StatusExpired,
			}, nil
		}

		_, err := deps.service.Terminate(ctx, contractID, "")

		assert.ErrorIs(t, err, contracterrors.ErrNotActive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestContractService_SweepExpired(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success expires and restores employee status", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		endDate := time.Now().AddDate(0, 0, -2)
		deps.repo.findExpiredActiveFn = func(ctx context.Context, today time.Time) ([]contract.Contract, error) {
			return []contract.Contract{
				{
					ID:           uuid.New(),
					EmployeeID:   employeeID,
					ContractType: contract.TypeJobOrder,
					EndDate:      &endDate,
					Status:       contract.StatusActive,
				},
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, c *contract.Contract) error {
			assert.Equal(t, contract.StatusExpired, c.Status)
			return nil
		}
		deps.repo.getEmployeeStatusFn = func(ctx context.Context, eid string) (string, error) {
			return "Probationary", nil
		}
		restored := false
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, eid, status string) error {
			restored = true
			assert.Equal(t, "Active", status)
			return nil
		}

		result, err := deps.service.SweepExpired(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.ExpiredCount)
		assert.True(t, restored)
		assert.Len(t, result.Details, 1)
		assert.True(t, result.Details[0].StatusRestored)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success resigned employees keep their status", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		endDate := time.Now().AddDate(0, 0, -1)
		deps.repo.findExpiredActiveFn = func(ctx context.Context, today time.Time) ([]contract.Contract, error) {
			return []contract.Contract{
				{
					ID:           uuid.New(),
					EmployeeID:   employeeID,
					ContractType: contract.TypeContractual,
					EndDate:      &endDate,
					Status:       contract.StatusActive,
				},
			}, nil
		}
		deps.repo.getEmployeeStatusFn = func(ctx context.Context, eid string) (string, error) {
			return "Resigned", nil
		}
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, eid, status string) error {
			t.Fatal("resigned employee status must not be overwritten")
			return nil
		}

		result, err := deps.service.SweepExpired(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.ExpiredCount)
		assert.False(t, result.Details[0].StatusRestored)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success nothing to sweep", func(t *testing.T) {
		deps := setupContractServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findExpiredActiveFn = func(ctx context.Context, today time.Time) ([]contract.Contract, error) {
			return nil, nil
		}

		result, err := deps.service.SweepExpired(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.ExpiredCount)
		assert.Empty(t, result.Details)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
