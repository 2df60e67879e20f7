package profilechange

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"school-hris/internal/events"
	"school-hris/internal/messaging/kafka"
	profilechangeerrors "school-hris/internal/profilechange/errors"
	"school-hris/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=profilechange_service.go -destination=mock/profilechange_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateProfileChangeRequest) (ProfileChangeResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]ProfileChangeResponse, error)
	GetAllPending(ctx context.Context) ([]ProfileChangeResponse, error)
	Approve(ctx context.Context, actorID, id string) (ProfileChangeResponse, error)
	Reject(ctx context.Context, actorID, id, reason string) (ProfileChangeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("profilechange.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profilechange.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateProfileChangeRequest) (ProfileChangeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create profile change requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ProfileChangeResponse{}, profilechangeerrors.ErrEmployeeNotFound
	}

	current, err := s.repo.GetEmployeeProfile(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileChangeResponse{}, profilechangeerrors.ErrEmployeeNotFound
		}
		return ProfileChangeResponse{}, err
	}

	// keep only known keys whose value actually differs
	requested := make(map[string]string)
	snapshot := make(map[string]string)
	for key, value := range req.RequestedChanges {
		old, ok := current[key]
		if !ok || old == value {
			continue
		}
		requested[key] = value
		snapshot[key] = old
	}
	if len(requested) == 0 {
		return ProfileChangeResponse{}, profilechangeerrors.ErrNoChanges
	}

	changedFields := make([]string, 0, len(requested))
	for key := range requested {
		changedFields = append(changedFields, key)
	}
	sort.Strings(changedFields)

	pending, err := s.repo.HasPendingByEmployee(ctx, employeeID)
	if err != nil {
		return ProfileChangeResponse{}, err
	}
	if pending {
		return ProfileChangeResponse{}, profilechangeerrors.ErrPendingRequestExists
	}

	currentJSON, _ := json.Marshal(snapshot)
	requestedJSON, _ := json.Marshal(requested)
	fieldsJSON, _ := json.Marshal(changedFields)

	pcr := &ProfileChangeRequest{
		ID:               uuid.New(),
		EmployeeID:       employeeUUID,
		CurrentValues:    currentJSON,
		RequestedChanges: requestedJSON,
		ChangedFields:    fieldsJSON,
		Status:           StatusPending,
	}

	if err := s.repo.Create(ctx, pcr); err != nil {
		s.logger.Error("create profile change persist failed", zap.Error(err))
		return ProfileChangeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create profile change success",
		zap.String("request_id", rid),
		zap.String("id", pcr.ID.String()),
		zap.Strings("changed_fields", changedFields),
	)
	return mapToResponse(*pcr), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]ProfileChangeResponse, error) {
	reqs, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(reqs), nil
}

func (s *service) GetAllPending(ctx context.Context) ([]ProfileChangeResponse, error) {
	reqs, err := s.repo.FindAllPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(reqs), nil
}

// Approve applies the requested changes to the employee row and resolves
// the request in one transaction.
func (s *service) Approve(ctx context.Context, actorID, id string) (ProfileChangeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	pcr, err := s.resolve(ctx, rid, actorID, id, StatusApproved, "")
	if err != nil {
		return ProfileChangeResponse{}, err
	}

	s.logger.Info("approve profile change success",
		zap.String("id", id),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*pcr), nil
}

func (s *service) Reject(ctx context.Context, actorID, id, reason string) (ProfileChangeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	pcr, err := s.resolve(ctx, rid, actorID, id, StatusRejected, reason)
	if err != nil {
		return ProfileChangeResponse{}, err
	}

	s.logger.Info("reject profile change success",
		zap.String("id", id),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*pcr), nil
}

func (s *service) resolve(ctx context.Context, rid, actorID, id, target, reason string) (*ProfileChangeRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, profilechangeerrors.ErrInvalidRequestID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, profilechangeerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("profile change resolve begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pcr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profilechangeerrors.ErrRequestNotFound
		}
		return nil, err
	}
	if pcr.Status != StatusPending {
		s.logger.Warn("profile change resolve invalid state",
			zap.String("id", id),
			zap.String("status", pcr.Status),
		)
		return nil, profilechangeerrors.ErrNotPending
	}

	if target == StatusApproved {
		var requested map[string]string
		if err := json.Unmarshal(pcr.RequestedChanges, &requested); err != nil {
			return nil, err
		}
		if err := qtx.UpdateEmployeeFields(ctx, pcr.EmployeeID.String(), requested); err != nil {
			s.logger.Error("profile change apply failed", zap.Error(err))
			return nil, err
		}
	}

	now := time.Now()
	pcr.Status = target
	pcr.ResolvedBy = &actorUUID
	pcr.ResolvedAt = &now
	if target == StatusRejected {
		pcr.RejectionReason = &reason
	}

	if err := qtx.Update(ctx, pcr); err != nil {
		s.logger.Error("profile change resolve persist failed", zap.Error(err))
		return nil, err
	}

	if err := s.enqueueResolvedEvent(ctx, tx, rid, pcr); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("profile change resolve commit failed", zap.Error(err))
		return nil, err
	}
	return pcr, nil
}

func (s *service) enqueueResolvedEvent(ctx context.Context, tx *sql.Tx, rid string, pcr *ProfileChangeRequest) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ProfileChangeResolvedEvent{
		EventType:  "profile_change_resolved",
		RequestID:  rid,
		ID:         pcr.ID.String(),
		EmployeeID: pcr.EmployeeID.String(),
		Status:     pcr.Status,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal profile change event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "profile_change",
		AggregateID:   pcr.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ProfileChangeResolvedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("profile change outbox persist failed", zap.Error(err))
		return err
	}
	return nil
}

func mapToResponse(pcr ProfileChangeRequest) ProfileChangeResponse {
	var fields []string
	_ = json.Unmarshal(pcr.ChangedFields, &fields)

	resp := ProfileChangeResponse{
		ID:               pcr.ID.String(),
		EmployeeID:       pcr.EmployeeID.String(),
		CurrentValues:    json.RawMessage(pcr.CurrentValues),
		RequestedChanges: json.RawMessage(pcr.RequestedChanges),
		ChangedFields:    fields,
		Status:           pcr.Status,
		RejectionReason:  pcr.RejectionReason,
	}
	if pcr.ResolvedBy != nil {
		v := pcr.ResolvedBy.String()
		resp.ResolvedBy = &v
	}
	return resp
}

func mapToListResponse(reqs []ProfileChangeRequest) []ProfileChangeResponse {
	resp := make([]ProfileChangeResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = mapToResponse(r)
	}
	return resp
}
