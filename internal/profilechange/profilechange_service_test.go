package profilechange_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"school-hris/internal/profilechange"
	profilechangeerrors "school-hris/internal/profilechange/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProfileChangeRepository struct {
	withTxFn               func(tx *sql.Tx) profilechange.Repository
	createFn               func(ctx context.Context, r *profilechange.ProfileChangeRequest) error
	findByIDFn             func(ctx context.Context, id string) (*profilechange.ProfileChangeRequest, error)
	findAllByEmployeeFn    func(ctx context.Context, employeeID string) ([]profilechange.ProfileChangeRequest, error)
	findAllPendingFn       func(ctx context.Context) ([]profilechange.ProfileChangeRequest, error)
	hasPendingByEmployeeFn func(ctx context.Context, employeeID string) (bool, error)
	updateFn               func(ctx context.Context, r *profilechange.ProfileChangeRequest) error
	getEmployeeProfileFn   func(ctx context.Context, employeeID string) (map[string]string, error)
	updateEmployeeFieldsFn func(ctx context.Context, employeeID string, fields map[string]string) error
}

func (f *fakeProfileChangeRepository) WithTx(tx *sql.Tx) profilechange.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeProfileChangeRepository) Create(ctx context.Context, r *profilechange.ProfileChangeRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeProfileChangeRepository) FindByID(ctx context.Context, id string) (*profilechange.ProfileChangeRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileChangeRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]profilechange.ProfileChangeRequest, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeProfileChangeRepository) FindAllPending(ctx context.Context) ([]profilechange.ProfileChangeRequest, error) {
	if f.findAllPendingFn != nil {
		return f.findAllPendingFn(ctx)
	}
	return nil, nil
}

func (f *fakeProfileChangeRepository) HasPendingByEmployee(ctx context.Context, employeeID string) (bool, error) {
	if f.hasPendingByEmployeeFn != nil {
		return f.hasPendingByEmployeeFn(ctx, employeeID)
	}
	return false, nil
}

func (f *fakeProfileChangeRepository) Update(ctx context.Context, r *profilechange.ProfileChangeRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeProfileChangeRepository) GetEmployeeProfile(ctx context.Context, employeeID string) (map[string]string, error) {
	if f.getEmployeeProfileFn != nil {
		return f.getEmployeeProfileFn(ctx, employeeID)
	}
	return map[string]string{
		"fullName":         "Maria Santos",
		"phone":            "0917-000-0000",
		"address":          "Quezon City",
		"civilStatus":      "Single",
		"emergencyContact": "Jose Santos",
	}, nil
}

func (f *fakeProfileChangeRepository) UpdateEmployeeFields(ctx context.Context, employeeID string, fields map[string]string) error {
	if f.updateEmployeeFieldsFn != nil {
		return f.updateEmployeeFieldsFn(ctx, employeeID, fields)
	}
	return nil
}

type profileChangeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service profilechange.Service
	repo    *fakeProfileChangeRepository
}

func setupProfileChangeServiceTest(t *testing.T) *profileChangeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeProfileChangeRepository{}
	svc := profilechange.NewService(db, repo, nil)

	return &profileChangeServiceDeps{
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

func TestProfileChangeService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success keeps only fields that differ", func(t *testing.T) {
		deps := setupProfileChangeServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, r *profilechange.ProfileChangeRequest) error {
			var requested map[string]string
			assert.NoError(t, json.Unmarshal(r.RequestedChanges, &requested))
			assert.Equal(t, map[string]string{"phone": "0917-111-1111"}, requested)

			var snapshot map[string]string
			assert.NoError(t, json.Unmarshal(r.CurrentValues, &snapshot))
			assert.Equal(t, map[string]string{"phone": "0917-000-0000"}, snapshot)
			assert.Equal(t, profilechange.StatusPending, r.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, employeeID, profilechange.CreateProfileChangeRequest{
			RequestedChanges: map[string]string{
				"phone":    "0917-111-1111",
				"fullName": "Maria Santos", // unchanged, must be dropped
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"phone"}, resp.ChangedFields)
	})

	t.Run("negative no effective changes", func(t *testing.T) {
		deps := setupProfileChangeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, employeeID, profilechange.CreateProfileChangeRequest{
			RequestedChanges: map[string]string{
				"fullName": "Maria Santos",
				"email":    "new@school.edu", // unknown key, must be ignored
			},
		})

		assert.ErrorIs(t, err, profilechangeerrors.ErrNoChanges)
	})

	t.Run("negative pending request already exists", func(t *testing.T) {
		deps := setupProfileChangeServiceTest(t)
		defer deps.db.Close()

		deps.repo.hasPendingByEmployeeFn = func(ctx context.Context, eid string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, employeeID, profilechange.CreateProfileChangeRequest{
			RequestedChanges: map[string]string{"address": "Makati City"},
		})

		assert.ErrorIs(t, err, profilechangeerrors.ErrPendingRequestExists)
	})
}

func TestProfileChangeService_Approve(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New()

	pendingRequest := func(id string) *profilechange.ProfileChangeRequest {
		requested, _ := json.Marshal(map[string]string{"phone": "0917-222-2222"})
		fields, _ := json.Marshal([]string{"phone"})
		return &profilechange.ProfileChangeRequest{
			ID:               uuid.MustParse(id),
			EmployeeID:       employeeID,
			RequestedChanges: requested,
			ChangedFields:    fields,
			Status:           profilechange.StatusPending,
		}
	}

	t.Run("success applies the changes to the employee", func(t *testing.T) {
		deps := setupProfileChangeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*profilechange.ProfileChangeRequest, error) {
			return pendingRequest(id), nil
		}
		applied := false
		deps.repo.updateEmployeeFieldsFn = func(ctx context.Context, eid string, fields map[string]string) error {
			applied = true
			assert.Equal(t, employeeID.String(), eid)
			assert.Equal(t, map[string]string{"phone": "0917-222-2222"}, fields)
			return nil
		}
		deps.repo.updateFn = func(ctx context.Context, r *profilechange.ProfileChangeRequest) error {
			assert.Equal(t, profilechange.StatusApproved, r.Status)
			assert.NotNil(t, r.ResolvedBy)
			assert.Equal(t, actorID, r.ResolvedBy.String())
			assert.NotNil(t, r.ResolvedAt)
			return nil
		}

		resp, err := deps.service.Approve(ctx, actorID, requestID)

		assert.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, profilechange.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already resolved", func(t *testing.T) {
		deps := setupProfileChangeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*profilechange.ProfileChangeRequest, error) {
			r := pendingRequest(id)
			r.Status = profilechange.StatusApproved
			return r, nil
		}
		deps.repo.updateEmployeeFieldsFn = func(ctx context.Context, eid string, fields map[string]string) error {
			t.Fatal("resolved request must not touch the employee row")
			return nil
		}

		_, err := deps.service.Approve(ctx, actorID, requestID)

		assert.ErrorIs(t, err, profilechangeerrors.ErrNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestProfileChangeService_Reject(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("success never touches the employee row", func(t *testing.T) {
		deps := setupProfileChangeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		requested, _ := json.Marshal(map[string]string{"address": "Pasig City"})
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*profilechange.ProfileChangeRequest, error) {
			return &profilechange.ProfileChangeRequest{
				ID:               uuid.MustParse(id),
				EmployeeID:       uuid.New(),
				RequestedChanges: requested,
				Status:           profilechange.StatusPending,
			}, nil
		}
		deps.repo.updateEmployeeFieldsFn = func(ctx context.Context, eid string, fields map[string]string) error {
			t.Fatal("rejection must not modify the employee")
			return nil
		}
		deps.repo.updateFn = func(ctx context.Context, r *profilechange.ProfileChangeRequest) error {
			assert.Equal(t, profilechange.StatusRejected, r.Status)
			assert.NotNil(t, r.RejectionReason)
			assert.Equal(t, "Needs supporting documents", *r.RejectionReason)
			return nil
		}

		resp, err := deps.service.Reject(ctx, actorID, requestID, "Needs supporting documents")

		assert.NoError(t, err)
		assert.Equal(t, profilechange.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative request not found", func(t *testing.T) {
		deps := setupProfileChangeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Reject(ctx, actorID, requestID, "missing")

		assert.ErrorIs(t, err, profilechangeerrors.ErrRequestNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
