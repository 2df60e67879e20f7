package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"school-hris/internal/employee"
	employeeerrors "school-hris/internal/employee/errors"
	"school-hris/internal/events"
	"school-hris/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const rosterCacheKey = "employees:list"

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

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type employeeServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *fakeEmployeeRepository
	counter   *fakeCounterRepository
	outbox    *fakeOutboxRepository
	redisMock redismock.ClientMock
}

func setupEmployeeServiceTest(t *testing.T) employeeServiceDeps {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{}
	outboxRepo := &fakeOutboxRepository{}

	return employeeServiceDeps{
		db:        db,
		sqlMock:   mock,
		service:   employee.NewService(db, repo, counterRepo, outboxRepo, rdb),
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		redisMock: redisMock,
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

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success assigns the next employee number", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			return 7, nil
		}
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "EMP-000007", e.EmployeeID)
			assert.Equal(t, employee.StatusActive, e.Status)
			assert.Equal(t, employee.RoleEmployee, e.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(e.Password), []byte("s3cret")))
			return nil
		}

		var published kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			published = event
			return nil
		}
		deps.redisMock.ExpectDel(rosterCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Maria Santos",
			Email:    "maria.santos@school.edu",
			Password: "s3cret",
			HireDate: "2026-06-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000007", resp.EmployeeID)
		assert.Equal(t, events.EmployeeCreatedTopic, published.Topic)
		assert.Equal(t, "employee_created", published.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("success keeps a caller-supplied employee number", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			t.Fatal("counter must not be consulted when the number is supplied")
			return 0, nil
		}
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "EMP-LEGACY-01", e.EmployeeID)
			return nil
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			EmployeeID: "EMP-LEGACY-01",
			FullName:   "Jose Rizal",
			Email:      "jose.rizal@school.edu",
			Password:   "s3cret",
			HireDate:   "2026-06-01",
		})

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative malformed hire date opens no transaction", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Maria Santos",
			Email:    "maria.santos@school.edu",
			Password: "s3cret",
			HireDate: "June 1, 2026",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()
	rosterID := uuid.New()
	hireDate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	cachedRoster := []employee.EmployeeResponse{{
		ID:         rosterID.String(),
		EmployeeID: "EMP-000001",
		FullName:   "Maria Santos",
		Email:      "maria@school.edu",
		Role:       "employee",
		Status:     "Active",
		HireDate:   "2026-06-01",
	}}

	t.Run("success cache hit skips the database", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		payload, err := json.Marshal(cachedRoster)
		assert.NoError(t, err)
		deps.redisMock.ExpectGet(rosterCacheKey).SetVal(string(payload))

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			t.Fatal("a warm cache must not touch the database")
			return nil, nil
		}

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "EMP-000001", resp[0].EmployeeID)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("success cache miss fills the cache and filters bad rows", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		deps.redisMock.ExpectGet(rosterCacheKey).RedisNil()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{
				{
					ID:         rosterID,
					EmployeeID: "EMP-000001",
					FullName:   "Maria Santos",
					Email:      "maria@school.edu",
					Role:       "employee",
					Status:     "Active",
					HireDate:   hireDate,
				},
				{ID: uuid.New(), EmployeeID: "EMP-000002", FullName: "", Email: ""},
			}, nil
		}

		payload, err := json.Marshal(cachedRoster)
		assert.NoError(t, err)
		deps.redisMock.ExpectSet(rosterCacheKey, payload, 2*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "EMP-000001", resp[0].EmployeeID)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative malformed id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		_, err := deps.service.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		_, err := deps.service.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success only overwrites supplied fields", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:         employeeID,
				EmployeeID: "EMP-000001",
				FullName:   "Maria Santos",
				Email:      "maria@school.edu",
				Role:       employee.RoleEmployee,
				Status:     employee.StatusActive,
				Phone:      "0917-000-0000",
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "0917-111-1111", e.Phone)
			assert.Equal(t, "Maria Santos", e.FullName)
			return nil
		}
		deps.redisMock.ExpectDel(rosterCacheKey).SetVal(1)

		resp, err := deps.service.Update(ctx, employeeID.String(), employee.UpdateEmployeeRequest{
			Phone: "0917-111-1111",
		})

		assert.NoError(t, err)
		assert.Equal(t, "0917-111-1111", resp.Phone)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("success suspends the account", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:         employeeID,
				EmployeeID: "EMP-000001",
				FullName:   "Maria Santos",
				Email:      "maria@school.edu",
				Status:     employee.StatusActive,
			}, nil
		}

		suspended := true
		resp, err := deps.service.Update(ctx, employeeID.String(), employee.UpdateEmployeeRequest{
			IsSuspended: &suspended,
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsSuspended)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		err := deps.service.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("success removes the record", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		id := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, eid string) (*employee.Employee, error) {
			return &employee.Employee{ID: id, EmployeeID: "EMP-000001", FullName: "x", Email: "x@school.edu"}, nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, eid string) error {
			deleted = true
			assert.Equal(t, id.String(), eid)
			return nil
		}

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})
}
