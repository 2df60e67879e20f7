package document

import (
	"context"
	"errors"
	"time"

	documenterrors "school-hris/internal/document/errors"
	"school-hris/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateDocumentRequest) (DocumentResponse, error)
	Request(ctx context.Context, actorID string, req RequestDocumentRequest) (DocumentResponse, error)
	Submit(ctx context.Context, employeeID, id string, req SubmitDocumentRequest) (DocumentResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]DocumentResponse, error)
	GetAll(ctx context.Context, status string) ([]DocumentResponse, error)
	Approve(ctx context.Context, actorID, id, remarks string) (DocumentResponse, error)
	Reject(ctx context.Context, actorID, id, remarks string) (DocumentResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateDocumentRequest) (DocumentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrEmployeeNotFound
	}

	d := &Document{
		ID:           uuid.New(),
		EmployeeID:   employeeUUID,
		DocumentType: req.DocumentType,
		Title:        req.Title,
		FilePath:     req.FilePath,
		Remarks:      req.Remarks,
		Status:       StatusPending,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create document persist failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	s.logger.Info("create document success",
		zap.String("request_id", rid),
		zap.String("document_id", d.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*d), nil
}

// Request creates an HR-initiated document the employee must submit.
func (s *service) Request(ctx context.Context, actorID string, req RequestDocumentRequest) (DocumentResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrEmployeeNotFound
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if !exists {
		return DocumentResponse{}, documenterrors.ErrEmployeeNotFound
	}

	d := &Document{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		DocumentType:  req.DocumentType,
		Title:         req.Title,
		Remarks:       req.Remarks,
		Status:        StatusRequested,
		IsHRRequested: true,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("request document persist failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	s.logger.Info("request document success",
		zap.String("document_id", d.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*d), nil
}

// Submit attaches the file to a requested document and moves it to Pending.
func (s *service) Submit(ctx context.Context, employeeID, id string, req SubmitDocumentRequest) (DocumentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, documenterrors.ErrDocumentNotFound
		}
		return DocumentResponse{}, err
	}
	if d.EmployeeID.String() != employeeID {
		return DocumentResponse{}, documenterrors.ErrNotOwner
	}
	if d.Status != StatusRequested {
		return DocumentResponse{}, documenterrors.ErrNotRequested
	}

	d.FilePath = req.FilePath
	d.Status = StatusPending

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("submit document persist failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	s.logger.Info("submit document success", zap.String("document_id", id))
	return mapToResponse(*d), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]DocumentResponse, error) {
	docs, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(docs), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]DocumentResponse, error) {
	docs, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(docs), nil
}

func (s *service) Approve(ctx context.Context, actorID, id, remarks string) (DocumentResponse, error) {
	return s.review(ctx, actorID, id, StatusApproved, remarks)
}

func (s *service) Reject(ctx context.Context, actorID, id, remarks string) (DocumentResponse, error) {
	return s.review(ctx, actorID, id, StatusRejected, remarks)
}

func (s *service) review(ctx context.Context, actorID, id, target, remarks string) (DocumentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, documenterrors.ErrDocumentNotFound
		}
		return DocumentResponse{}, err
	}
	if d.Status != StatusPending {
		s.logger.Warn("document review invalid state",
			zap.String("document_id", id),
			zap.String("status", d.Status),
		)
		return DocumentResponse{}, documenterrors.ErrNotPending
	}

	now := time.Now()
	d.Status = target
	d.ReviewedBy = &actorUUID
	d.ReviewedAt = &now
	if remarks != "" {
		d.Remarks = remarks
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("document review persist failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	s.logger.Info("document review success",
		zap.String("document_id", id),
		zap.String("status", target),
	)
	return mapToResponse(*d), nil
}

func mapToResponse(d Document) DocumentResponse {
	resp := DocumentResponse{
		ID:            d.ID.String(),
		EmployeeID:    d.EmployeeID.String(),
		DocumentType:  d.DocumentType,
		Title:         d.Title,
		FilePath:      d.FilePath,
		Remarks:       d.Remarks,
		Status:        d.Status,
		IsHRRequested: d.IsHRRequested,
	}
	if d.ReviewedBy != nil {
		v := d.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	return resp
}

func mapToListResponse(docs []Document) []DocumentResponse {
	resp := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		resp[i] = mapToResponse(d)
	}
	return resp
}
