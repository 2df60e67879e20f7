package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"school-hris/internal/events"
	leaveerrors "school-hris/internal/leave/errors"
	"school-hris/internal/messaging/kafka"
	"school-hris/internal/schoolyear"
	"school-hris/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreditLedger is the slice of the leave-credit service the approval flow
// needs. The debit is best-effort: approval stands even when it fails.
type CreditLedger interface {
	ApplyLeaveUsage(ctx context.Context, leaveID string) error
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetAll(ctx context.Context, status string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, reason string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	ledger CreditLedger
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, ledger CreditLedger, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, ledger: ledger, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if endDate.Before(startDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	// inclusive span; an explicit daysCount wins so half days work
	days := inclusiveDays(startDate, endDate)
	if req.DaysCount != "" {
		days, err = decimal.NewFromString(req.DaysCount)
		if err != nil || !days.IsPositive() {
			return LeaveResponse{}, leaveerrors.ErrInvalidDaysCount
		}
	}

	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("create leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, employeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		DaysCount:  days,
		SchoolYear: schoolyear.ForDate(startDate),
		Status:     StatusPending,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("school_year", l.SchoolYear),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	l, err := s.transitionStatus(ctx, rid, actorID, id, StatusApproved, "")
	if err != nil {
		return LeaveResponse{}, err
	}

	// best-effort ledger debit: an error here is logged, never surfaced
	if s.ledger != nil {
		if err := s.ledger.ApplyLeaveUsage(ctx, id); err != nil {
			s.logger.Error("leave credit debit failed after approval",
				zap.String("leave_id", id),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, actorID, id, reason string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("reject leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	l, err := s.transitionStatus(ctx, rid, actorID, id, StatusRejected, reason)
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*l), nil
}

// transitionStatus moves a pending leave to its terminal status and records
// the status-change event in the outbox within the same transaction.
func (s *service) transitionStatus(ctx context.Context, rid, actorID, id, target, reason string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave transition begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("leave transition invalid state",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return nil, leaveerrors.ErrNotPending
	}

	now := time.Now()
	l.Status = target
	l.ApprovedBy = &actorUUID
	l.ApprovedAt = &now
	if target == StatusRejected {
		l.RejectionReason = &reason
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("leave transition persist failed", zap.Error(err))
		return nil, err
	}

	if err := s.enqueueStatusEvent(ctx, tx, rid, l); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave transition commit failed", zap.Error(err))
		return nil, err
	}
	return l, nil
}

func (s *service) enqueueStatusEvent(ctx context.Context, tx *sql.Tx, rid string, l *Leave) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveStatusChangedEvent{
		EventType:  "leave_status_changed",
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Status:     l.Status,
		SchoolYear: l.SchoolYear,
		DaysCount:  l.DaysCount.String(),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// inclusiveDays counts calendar days between two dates, both ends
// included. The bounds are pinned to UTC midnight first so the division
// never sees a DST-shortened day.
func inclusiveDays(start, end time.Time) decimal.Decimal {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return decimal.NewFromInt(int64(e.Sub(s).Hours()/24) + 1)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		DaysCount:  l.DaysCount,
		SchoolYear: l.SchoolYear,
		Reason:     l.Reason,
		Status:     l.Status,
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
