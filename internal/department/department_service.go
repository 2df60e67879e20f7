package department

import (
	"context"
	"errors"

	departmenterrors "school-hris/internal/department/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Archive(ctx context.Context, id string) (DepartmentResponse, error)
	AddDesignation(ctx context.Context, departmentID string, req CreateDesignationRequest) (DesignationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	d := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Status:      StatusActive,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create department success",
		zap.String("department_id", d.ID.String()),
		zap.String("name", d.Name),
	)
	return mapToResponse(*d, nil), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	departments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]DepartmentResponse, len(departments))
	for i, d := range departments {
		resp[i] = mapToResponse(d, nil)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	designations, err := s.repo.FindDesignationsByDepartment(ctx, id)
	if err != nil {
		return DepartmentResponse{}, err
	}
	return mapToResponse(*d, designations), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	if req.Name != "" {
		d.Name = req.Name
	}
	if req.Description != "" {
		d.Description = req.Description
	}
	if req.Status != "" {
		d.Status = req.Status
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*d, nil), nil
}

func (s *service) Archive(ctx context.Context, id string) (DepartmentResponse, error) {
	return s.Update(ctx, id, UpdateDepartmentRequest{Status: StatusArchived})
}

func (s *service) AddDesignation(ctx context.Context, departmentID string, req CreateDesignationRequest) (DesignationResponse, error) {
	deptUUID, err := uuid.Parse(departmentID)
	if err != nil {
		return DesignationResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DesignationResponse{}, err
	}
	if d.Status == StatusArchived {
		return DesignationResponse{}, departmenterrors.ErrDepartmentArchived
	}

	des := &Designation{
		ID:           uuid.New(),
		DepartmentID: deptUUID,
		Title:        req.Title,
		Status:       StatusActive,
	}

	if err := s.repo.CreateDesignation(ctx, des); err != nil {
		s.logger.Error("create designation persist failed", zap.Error(err))
		return DesignationResponse{}, err
	}

	return mapDesignationToResponse(*des), nil
}

func mapToResponse(d Department, designations []Designation) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
		Status:      d.Status,
	}
	for _, des := range designations {
		resp.Designations = append(resp.Designations, mapDesignationToResponse(des))
	}
	return resp
}

func mapDesignationToResponse(des Designation) DesignationResponse {
	return DesignationResponse{
		ID:           des.ID.String(),
		DepartmentID: des.DepartmentID.String(),
		Title:        des.Title,
		Status:       des.Status,
	}
}
