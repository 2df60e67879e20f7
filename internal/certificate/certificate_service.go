package certificate

import (
	"context"
	"errors"
	"time"

	certificateerrors "school-hris/internal/certificate/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=certificate_service.go -destination=mock/certificate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateCertificateRequest) (CertificateResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]CertificateResponse, error)
	GetAll(ctx context.Context, status string) ([]CertificateResponse, error)
	Approve(ctx context.Context, actorID, id, remarks string) (CertificateResponse, error)
	Reject(ctx context.Context, actorID, id, remarks string) (CertificateResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("certificate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certificate.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateCertificateRequest) (CertificateResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return CertificateResponse{}, certificateerrors.ErrInvalidCertificateID
	}

	c := &Certificate{
		ID:              uuid.New(),
		EmployeeID:      employeeUUID,
		CertificateType: req.CertificateType,
		Purpose:         req.Purpose,
		Status:          StatusPending,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create certificate persist failed", zap.Error(err))
		return CertificateResponse{}, err
	}

	s.logger.Info("create certificate success",
		zap.String("certificate_id", c.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*c), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]CertificateResponse, error) {
	certs, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(certs), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]CertificateResponse, error) {
	certs, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(certs), nil
}

func (s *service) Approve(ctx context.Context, actorID, id, remarks string) (CertificateResponse, error) {
	return s.review(ctx, actorID, id, StatusApproved, remarks)
}

func (s *service) Reject(ctx context.Context, actorID, id, remarks string) (CertificateResponse, error) {
	return s.review(ctx, actorID, id, StatusRejected, remarks)
}

func (s *service) review(ctx context.Context, actorID, id, target, remarks string) (CertificateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CertificateResponse{}, certificateerrors.ErrInvalidCertificateID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CertificateResponse{}, certificateerrors.ErrInvalidCertificateID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CertificateResponse{}, certificateerrors.ErrCertificateNotFound
		}
		return CertificateResponse{}, err
	}
	if c.Status != StatusPending {
		s.logger.Warn("certificate review invalid state",
			zap.String("certificate_id", id),
			zap.String("status", c.Status),
		)
		return CertificateResponse{}, certificateerrors.ErrNotPending
	}

	now := time.Now()
	c.Status = target
	c.ReviewedBy = &actorUUID
	c.ReviewedAt = &now
	if remarks != "" {
		c.Remarks = remarks
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("certificate review persist failed", zap.Error(err))
		return CertificateResponse{}, err
	}

	s.logger.Info("certificate review success",
		zap.String("certificate_id", id),
		zap.String("status", target),
	)
	return mapToResponse(*c), nil
}

func mapToResponse(c Certificate) CertificateResponse {
	resp := CertificateResponse{
		ID:              c.ID.String(),
		EmployeeID:      c.EmployeeID.String(),
		CertificateType: c.CertificateType,
		Purpose:         c.Purpose,
		Remarks:         c.Remarks,
		Status:          c.Status,
	}
	if c.ReviewedBy != nil {
		v := c.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	return resp
}

func mapToListResponse(certs []Certificate) []CertificateResponse {
	resp := make([]CertificateResponse, len(certs))
	for i, c := range certs {
		resp[i] = mapToResponse(c)
	}
	return resp
}
