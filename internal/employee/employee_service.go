package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "school-hris/internal/employee/errors"
	"school-hris/internal/events"
	"school-hris/internal/messaging/kafka"
	"school-hris/internal/shared/contextutil"
	"school-hris/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	counterEmployeeNumber = "employee_number"
	listCacheKey          = "employees:list"
	listCacheTTL          = 2 * time.Minute
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	group   singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create employee hash failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	employeeNumber := req.EmployeeID
	if employeeNumber == "" {
		next, err := s.counter.GetNextValue(ctx, counterEmployeeNumber)
		if err != nil {
			s.logger.Error("create employee counter failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		employeeNumber = fmt.Sprintf("EMP-%06d", next)
	}

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Employee{
		ID:         uuid.New(),
		EmployeeID: employeeNumber,
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       role,
		Status:     StatusActive,
		Phone:      req.Phone,
		Address:    req.Address,
		HireDate:   hireDate,
	}
	if req.DepartmentID != "" {
		deptUUID, err := uuid.Parse(req.DepartmentID)
		if err == nil {
			e.DepartmentID = &deptUUID
		}
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueCreatedEvent(ctx, tx, rid, e); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("id", e.ID.String()),
		zap.String("employee_id", e.EmployeeID),
	)

	return mapToResponse(*e), nil
}

// GetAll serves the roster from redis when warm; singleflight keeps a cold
// cache from stampeding the database.
func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, listCacheKey).Bytes(); err == nil {
			var resp []EmployeeResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.group.Do(listCacheKey, func() (any, error) {
		employees, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(employees)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, listCacheKey, payload, listCacheTTL).Err(); err != nil {
					s.logger.Warn("employee list cache set failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.FullName != "" {
		e.FullName = req.FullName
	}
	if req.Email != "" {
		e.Email = req.Email
	}
	if req.Role != "" {
		e.Role = req.Role
	}
	if req.Status != "" {
		e.Status = req.Status
	}
	if req.Phone != "" {
		e.Phone = req.Phone
	}
	if req.Address != "" {
		e.Address = req.Address
	}
	if req.IsSuspended != nil {
		e.IsSuspended = *req.IsSuspended
	}
	if req.DepartmentID != "" {
		deptUUID, err := uuid.Parse(req.DepartmentID)
		if err == nil {
			e.DepartmentID = &deptUUID
		}
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("update employee success", zap.String("id", id))
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return err
	}
	s.invalidateListCache(ctx)
	s.logger.Info("delete employee success", zap.String("id", id))
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.Warn("employee list cache invalidate failed", zap.Error(err))
	}
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, rid string, e *Employee) error {
	if s.outbox == nil {
		return nil
	}

	event := events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreated,
		RequestID:  rid,
		EmployeeID: e.ID.String(),
		FullName:   e.FullName,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal employee event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("employee outbox persist failed", zap.Error(err))
		return err
	}
	return nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID,
		FullName:    e.FullName,
		Email:       e.Email,
		Role:        e.Role,
		Status:      e.Status,
		IsSuspended: e.IsSuspended,
		Phone:       e.Phone,
		Address:     e.Address,
		HireDate:    e.HireDate.Format("2006-01-02"),
	}
	if e.DepartmentID != nil {
		resp.DepartmentID = e.DepartmentID.String()
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		if !e.Valid() {
			continue
		}
		resp = append(resp, mapToResponse(e))
	}
	return resp
}
