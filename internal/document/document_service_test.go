package document_test

import (
	"context"
	"database/sql"
	"testing"

	"school-hris/internal/document"
	documenterrors "school-hris/internal/document/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDocumentRepository struct {
	withTxFn            func(tx *sql.Tx) document.Repository
	createFn            func(ctx context.Context, d *document.Document) error
	findByIDFn          func(ctx context.Context, id string) (*document.Document, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]document.Document, error)
	findAllFn           func(ctx context.Context, status string) ([]document.Document, error)
	updateFn            func(ctx context.Context, d *document.Document) error
	employeeExistsFn    func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeDocumentRepository) WithTx(tx *sql.Tx) document.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDocumentRepository) Create(ctx context.Context, d *document.Document) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDocumentRepository) FindByID(ctx context.Context, id string) (*document.Document, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDocumentRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]document.Document, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeDocumentRepository) FindAll(ctx context.Context, status string) ([]document.Document, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeDocumentRepository) Update(ctx context.Context, d *document.Document) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, d)
	}
	return nil
}

func (f *fakeDocumentRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

func setupDocumentServiceTest(t *testing.T) (document.Service, *fakeDocumentRepository) {
	t.Helper()
	repo := &fakeDocumentRepository{}
	return document.NewService(repo), repo
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success employee upload starts pending", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.createFn = func(ctx context.Context, d *document.Document) error {
			assert.Equal(t, document.StatusPending, d.Status)
			assert.False(t, d.IsHRRequested)
			return nil
		}

		resp, err := svc.Create(ctx, employeeID, document.CreateDocumentRequest{
			DocumentType: "transcript",
			Title:        "TOR",
			FilePath:     "/uploads/tor.pdf",
		})

		assert.NoError(t, err)
		assert.Equal(t, document.StatusPending, resp.Status)
	})
}

func TestDocumentService_Request(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success hr request starts requested", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.createFn = func(ctx context.Context, d *document.Document) error {
			assert.Equal(t, document.StatusRequested, d.Status)
			assert.True(t, d.IsHRRequested)
			assert.Empty(t, d.FilePath)
			return nil
		}

		resp, err := svc.Request(ctx, actorID, document.RequestDocumentRequest{
			EmployeeID:   employeeID,
			DocumentType: "medical",
			Title:        "Medical certificate",
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsHRRequested)
		assert.Equal(t, document.StatusRequested, resp.Status)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := svc.Request(ctx, actorID, document.RequestDocumentRequest{
			EmployeeID:   employeeID,
			DocumentType: "medical",
			Title:        "Medical certificate",
		})

		assert.ErrorIs(t, err, documenterrors.ErrEmployeeNotFound)
	})
}

func TestDocumentService_Submit(t *testing.T) {
	ctx := context.Background()
	documentID := uuid.New().String()
	ownerID := uuid.New()

	requestedDoc := func(id string) *document.Document {
		return &document.Document{
			ID:            uuid.MustParse(id),
			EmployeeID:    ownerID,
			DocumentType:  "medical",
			Status:        document.StatusRequested,
			IsHRRequested: true,
		}
	}

	t.Run("success moves requested to pending", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			return requestedDoc(id), nil
		}
		repo.updateFn = func(ctx context.Context, d *document.Document) error {
			assert.Equal(t, document.StatusPending, d.Status)
			assert.Equal(t, "/uploads/medical.pdf", d.FilePath)
			return nil
		}

		resp, err := svc.Submit(ctx, ownerID.String(), documentID, document.SubmitDocumentRequest{
			FilePath: "/uploads/medical.pdf",
		})

		assert.NoError(t, err)
		assert.Equal(t, document.StatusPending, resp.Status)
	})

	t.Run("negative only the owner can submit", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			return requestedDoc(id), nil
		}

		_, err := svc.Submit(ctx, uuid.New().String(), documentID, document.SubmitDocumentRequest{
			FilePath: "/uploads/medical.pdf",
		})

		assert.ErrorIs(t, err, documenterrors.ErrNotOwner)
	})

	t.Run("negative pending documents cannot be re-submitted", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			d := requestedDoc(id)
			d.Status = document.StatusPending
			return d, nil
		}

		_, err := svc.Submit(ctx, ownerID.String(), documentID, document.SubmitDocumentRequest{
			FilePath: "/uploads/medical.pdf",
		})

		assert.ErrorIs(t, err, documenterrors.ErrNotRequested)
	})
}

func TestDocumentService_Review(t *testing.T) {
	ctx := context.Background()
	documentID := uuid.New().String()
	actorID := uuid.New().String()

	pendingDoc := func(id string) *document.Document {
		return &document.Document{
			ID:         uuid.MustParse(id),
			EmployeeID: uuid.New(),
			Status:     document.StatusPending,
		}
	}

	t.Run("success approve stamps the reviewer", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			return pendingDoc(id), nil
		}
		repo.updateFn = func(ctx context.Context, d *document.Document) error {
			assert.Equal(t, document.StatusApproved, d.Status)
			assert.NotNil(t, d.ReviewedBy)
			assert.Equal(t, actorID, d.ReviewedBy.String())
			assert.NotNil(t, d.ReviewedAt)
			return nil
		}

		resp, err := svc.Approve(ctx, actorID, documentID, "")

		assert.NoError(t, err)
		assert.Equal(t, document.StatusApproved, resp.Status)
	})

	t.Run("success reject keeps the remarks", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			return pendingDoc(id), nil
		}

		resp, err := svc.Reject(ctx, actorID, documentID, "Blurry scan")

		assert.NoError(t, err)
		assert.Equal(t, document.StatusRejected, resp.Status)
		assert.Equal(t, "Blurry scan", resp.Remarks)
	})

	t.Run("negative approved documents cannot be reviewed again", func(t *testing.T) {
		svc, repo := setupDocumentServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			d := pendingDoc(id)
			d.Status = document.StatusApproved
			return d, nil
		}

		_, err := svc.Approve(ctx, actorID, documentID, "")

		assert.ErrorIs(t, err, documenterrors.ErrNotPending)
	})
}
