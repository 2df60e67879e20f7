package contract

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	contracterrors "school-hris/internal/contract/errors"
	"school-hris/internal/events"
	"school-hris/internal/messaging/kafka"
	"school-hris/internal/shared/apperror"
	"school-hris/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	reasonSuperseded   = "New contract created"
	reasonRenewed      = "Contract renewed"
	reasonDefaultHR    = "Terminated by HR"
	employeeActive     = "Active"
	employeeTerminated = "Terminated"
)

//go:generate mockgen -source=contract_service.go -destination=mock/contract_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateContractRequest) (ContractResponse, error)
	Renew(ctx context.Context, id string, req RenewContractRequest) (ContractResponse, error)
	Terminate(ctx context.Context, id, reason string) (ContractResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]ContractResponse, error)
	GetExpiring(ctx context.Context, days int) ([]ContractResponse, error)
	SweepExpired(ctx context.Context) (SweepResult, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("contract.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

// Validate checks the shape rules for a contract type. Rules are ordered;
// the first failing rule wins.
func Validate(contractType string, startDate time.Time, endDate *time.Time, workSchedule, projectDetails string) error {
	if contractType == TypePermanent && endDate != nil {
		return apperror.New(apperror.CodeInvalidInput,
			"permanent contracts should not have an end date", http.StatusBadRequest)
	}
	if contractType != TypePermanent && endDate == nil {
		return apperror.New(apperror.CodeInvalidInput,
			fmt.Sprintf("%s contracts require an end date", contractType), http.StatusBadRequest)
	}
	if contractType == TypePartTime && strings.TrimSpace(workSchedule) == "" {
		return apperror.New(apperror.CodeInvalidInput,
			"part-time contracts must specify a work schedule", http.StatusBadRequest)
	}
	if contractType == TypeJobOrder && strings.TrimSpace(projectDetails) == "" {
		return apperror.New(apperror.CodeInvalidInput,
			"job-order contracts must specify project details", http.StatusBadRequest)
	}
	if endDate != nil && !endDate.After(startDate) {
		return apperror.New(apperror.CodeInvalidInput,
			"end date must be after start date", http.StatusBadRequest)
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateContractRequest) (ContractResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create contract requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("contract_type", req.ContractType),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ContractResponse{}, contracterrors.ErrEmployeeNotFound
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return ContractResponse{}, err
	}
	var endDate *time.Time
	if req.EndDate != "" {
		d, err := parseDate(req.EndDate)
		if err != nil {
			return ContractResponse{}, err
		}
		endDate = &d
	}

	if err := Validate(req.ContractType, startDate, endDate, req.WorkSchedule, req.ProjectDetails); err != nil {
		s.logger.Warn("create contract validation failed", zap.Error(err))
		return ContractResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create contract begin tx failed", zap.Error(err))
		return ContractResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create contract employee lookup failed", zap.Error(err))
		return ContractResponse{}, err
	}
	if !exists {
		return ContractResponse{}, contracterrors.ErrEmployeeNotFound
	}

	// supersede: a new contract always terminates the previous active one
	if err := qtx.TerminateActiveByEmployee(ctx, req.EmployeeID, reasonSuperseded); err != nil {
		s.logger.Error("create contract supersede failed", zap.Error(err))
		return ContractResponse{}, err
	}

	c := &Contract{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		ContractType:   req.ContractType,
		Position:       req.Position,
		Department:     req.Department,
		StartDate:      startDate,
		EndDate:        endDate,
		WorkSchedule:   req.WorkSchedule,
		ProjectDetails: req.ProjectDetails,
		Status:         StatusActive,
	}

	if err := qtx.Create(ctx, c); err != nil {
		s.logger.Error("create contract persist failed", zap.Error(err))
		return ContractResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, rid, events.ContractCreated, c, ""); err != nil {
		return ContractResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create contract commit failed", zap.Error(err))
		return ContractResponse{}, err
	}
	s.logger.Info("create contract success",
		zap.String("request_id", rid),
		zap.String("contract_id", c.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*c), nil
}

func (s *service) Renew(ctx context.Context, id string, req RenewContractRequest) (ContractResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("renew contract requested",
		zap.String("request_id", rid),
		zap.String("contract_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ContractResponse{}, contracterrors.ErrInvalidContractID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return ContractResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return ContractResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("renew contract begin tx failed", zap.Error(err))
		return ContractResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	old, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractResponse{}, contracterrors.ErrContractNotFound
		}
		return ContractResponse{}, err
	}

	if old.ContractType == TypePermanent {
		return ContractResponse{}, contracterrors.ErrCannotRenewPermanent
	}
	if old.Status != StatusActive && old.Status != StatusExpired {
		s.logger.Warn("renew contract invalid state",
			zap.String("contract_id", id),
			zap.String("status", old.Status),
		)
		return ContractResponse{}, contracterrors.ErrNotRenewable
	}

	workSchedule := req.WorkSchedule
	if workSchedule == "" {
		workSchedule = old.WorkSchedule
	}
	projectDetails := req.ProjectDetails
	if projectDetails == "" {
		projectDetails = old.ProjectDetails
	}

	if err := Validate(old.ContractType, startDate, &endDate, workSchedule, projectDetails); err != nil {
		return ContractResponse{}, err
	}

	if old.Status == StatusActive {
		old.Status = StatusTerminated
		old.TerminationReason = reasonRenewed
		if err := qtx.Update(ctx, old); err != nil {
			s.logger.Error("renew contract terminate old failed", zap.Error(err))
			return ContractResponse{}, err
		}
	}

	// the renewal carries type, position and department from the old row
	renewed := &Contract{
		ID:                 uuid.New(),
		EmployeeID:         old.EmployeeID,
		ContractType:       old.ContractType,
		Position:           old.Position,
		Department:         old.Department,
		StartDate:          startDate,
		EndDate:            &endDate,
		WorkSchedule:       workSchedule,
		ProjectDetails:     projectDetails,
		Status:             StatusActive,
		RenewalCount:       old.RenewalCount + 1,
		PreviousContractID: &old.ID,
	}

	if err := qtx.Create(ctx, renewed); err != nil {
		s.logger.Error("renew contract persist failed", zap.Error(err))
		return ContractResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, rid, events.ContractRenewed, renewed, ""); err != nil {
		return ContractResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("renew contract commit failed", zap.Error(err))
		return ContractResponse{}, err
	}
	s.logger.Info("renew contract success",
		zap.String("old_contract_id", old.ID.String()),
		zap.String("new_contract_id", renewed.ID.String()),
		zap.Int("renewal_count", renewed.RenewalCount),
	)

	return mapToResponse(*renewed), nil
}

func (s *service) Terminate(ctx context.Context, id, reason string) (ContractResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("terminate contract requested",
		zap.String("request_id", rid),
		zap.String("contract_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ContractResponse{}, contracterrors.ErrInvalidContractID
	}
	if reason == "" {
		reason = reasonDefaultHR
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("terminate contract begin tx failed", zap.Error(err))
		return ContractResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractResponse{}, contracterrors.ErrContractNotFound
		}
		return ContractResponse{}, err
	}
	if c.Status != StatusActive {
		s.logger.Warn("terminate contract invalid state",
			zap.String("contract_id", id),
			zap.String("status", c.Status),
		)
		return ContractResponse{}, contracterrors.ErrNotActive
	}

	c.Status = StatusTerminated
	c.TerminationReason = reason
	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("terminate contract persist failed", zap.Error(err))
		return ContractResponse{}, err
	}

	// termination cascades onto the employee record
	if err := qtx.UpdateEmployeeStatus(ctx, c.EmployeeID.String(), employeeTerminated); err != nil {
		s.logger.Error("terminate contract employee cascade failed", zap.Error(err))
		return ContractResponse{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, rid, events.ContractTerminated, c, reason); err != nil {
		return ContractResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("terminate contract commit failed", zap.Error(err))
		return ContractResponse{}, err
	}
	s.logger.Info("terminate contract success",
		zap.String("contract_id", id),
		zap.String("reason", reason),
	)

	return mapToResponse(*c), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]ContractResponse, error) {
	contracts, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(contracts), nil
}

func (s *service) GetExpiring(ctx context.Context, days int) ([]ContractResponse, error) {
	if days <= 0 {
		days = 30
	}
	contracts, err := s.repo.FindExpiring(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(contracts), nil
}

// SweepExpired expires every active contract whose end date has passed and
// restores the owning employee's status when no active contract remains.
// The sweep is idempotent: a second run finds nothing to do.
func (s *service) SweepExpired(ctx context.Context) (SweepResult, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("sweep begin tx failed", zap.Error(err))
		return SweepResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	expired, err := qtx.FindExpiredActive(ctx, today)
	if err != nil {
		s.logger.Error("sweep find expired failed", zap.Error(err))
		return SweepResult{}, err
	}

	result := SweepResult{Details: make([]SweepLogEntry, 0, len(expired))}

	for i := range expired {
		c := &expired[i]
		c.Status = StatusExpired
		if err := qtx.Update(ctx, c); err != nil {
			s.logger.Error("sweep expire contract failed",
				zap.String("contract_id", c.ID.String()),
				zap.Error(err),
			)
			return SweepResult{}, err
		}

		entry := SweepLogEntry{
			ContractID: c.ID.String(),
			EmployeeID: c.EmployeeID.String(),
		}
		if c.EndDate != nil {
			entry.EndDate = c.EndDate.Format("2006-01-02")
		}

		remaining, err := qtx.CountActiveByEmployee(ctx, c.EmployeeID.String())
		if err != nil {
			return SweepResult{}, err
		}
		if remaining == 0 {
			status, err := qtx.GetEmployeeStatus(ctx, c.EmployeeID.String())
			if err != nil {
				return SweepResult{}, err
			}
			lowered := strings.ToLower(status)
			if lowered != "resigned" && lowered != "terminated" {
				if err := qtx.UpdateEmployeeStatus(ctx, c.EmployeeID.String(), employeeActive); err != nil {
					return SweepResult{}, err
				}
				entry.StatusRestored = true
			}
		}

		if err := s.enqueueLifecycleEvent(ctx, tx, "", events.ContractExpired, c, "Contract end date passed"); err != nil {
			return SweepResult{}, err
		}

		result.ExpiredCount++
		result.Details = append(result.Details, entry)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("sweep commit failed", zap.Error(err))
		return SweepResult{}, err
	}

	s.logger.Info("contract sweep finished",
		zap.Int("expired_count", result.ExpiredCount),
	)
	return result, nil
}

func (s *service) enqueueLifecycleEvent(
	ctx context.Context,
	tx *sql.Tx,
	requestID, eventType string,
	c *Contract,
	reason string,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ContractLifecycleEvent{
		EventType:    eventType,
		RequestID:    requestID,
		ContractID:   c.ID.String(),
		EmployeeID:   c.EmployeeID.String(),
		ContractType: c.ContractType,
		Reason:       reason,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal contract event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "contract",
		AggregateID:   c.ID.String(),
		EventType:     eventType,
		Topic:         events.ContractLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("contract outbox persist failed",
			zap.String("contract_id", c.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, contracterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:                c.ID.String(),
		EmployeeID:        c.EmployeeID.String(),
		ContractType:      c.ContractType,
		Position:          c.Position,
		Department:        c.Department,
		StartDate:         c.StartDate.Format("2006-01-02"),
		WorkSchedule:      c.WorkSchedule,
		ProjectDetails:    c.ProjectDetails,
		Status:            c.Status,
		TerminationReason: c.TerminationReason,
		RenewalCount:      c.RenewalCount,
	}
	if c.EndDate != nil {
		v := c.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	if c.PreviousContractID != nil {
		v := c.PreviousContractID.String()
		resp.PreviousContractID = &v
	}
	return resp
}

func mapToListResponse(contracts []Contract) []ContractResponse {
	resp := make([]ContractResponse, len(contracts))
	for i, c := range contracts {
		resp[i] = mapToResponse(c)
	}
	return resp
}
